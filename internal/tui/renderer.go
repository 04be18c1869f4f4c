package tui

import (
	"fmt"
	"strings"

	"go.seanlatimer.dev/folio/internal/records"
	"go.seanlatimer.dev/folio/internal/search"
)

const (
	defaultListHeight = 10
	defaultWidth      = 80
)

type RenderState struct {
	Input     string
	Query     string
	Tags      []string
	Active    []string
	TagCursor int
	TagsFocus bool
	Results   []search.Result
	Cursor    int
	Location  string
	Width     int
	Height    int
}

func RenderUI(state RenderState) string {
	width := state.Width
	if width <= 0 {
		width = defaultWidth
	}

	lines := []string{
		getStyles().SearchInputStyle.Render("Search: ") + state.Input,
		renderTagBar(state),
		"",
	}
	lines = append(lines, renderResults(state, width)...)
	lines = append(lines, "")
	if state.Location != "" {
		lines = append(lines, getStyles().URLStyle.Render(truncateToWidth(state.Location, width)))
	}
	lines = append(lines, renderFooter(state, width))
	return strings.Join(lines, "\n")
}

func renderTagBar(state RenderState) string {
	active := make(map[string]bool, len(state.Active))
	for _, t := range state.Active {
		active[t] = true
	}

	chips := make([]string, 0, len(state.Tags)+1)
	chips = append(chips, renderChip("All", len(state.Active) == 0, state.TagsFocus && state.TagCursor == 0))
	for i, tag := range state.Tags {
		chips = append(chips, renderChip(tag, active[tag], state.TagsFocus && state.TagCursor == i+1))
	}
	prefix := "Tags: "
	if !state.TagsFocus {
		prefix = getStyles().SubtleStyle.Render(prefix)
	}
	return prefix + strings.Join(chips, " ")
}

func renderChip(label string, active, focused bool) string {
	text := "[" + label + "]"
	style := getStyles().TagStyle
	if active {
		style = getStyles().ActiveTagStyle
	}
	if focused {
		style = style.Inherit(getStyles().TagCursorStyle)
	}
	return style.Render(text)
}

func renderResults(state RenderState, width int) []string {
	if len(state.Results) == 0 {
		return []string{getStyles().FooterStyle.Render("(no matches)")}
	}

	limit := defaultListHeight
	if state.Height > 0 {
		// input, tags, two spacers, url, footer, summary
		if avail := (state.Height - 7) / 2; avail > 0 && avail < limit {
			limit = avail
		}
	}
	if len(state.Results) < limit {
		limit = len(state.Results)
	}
	start := 0
	if state.Cursor >= limit {
		start = state.Cursor - limit + 1
	}

	lines := make([]string, 0, limit*2+1)
	for i := start; i < start+limit; i++ {
		lines = append(lines, renderResult(state.Results[i].Record, state.Query, i == state.Cursor, width)...)
	}
	lines = append(lines, getStyles().SubtleStyle.Render(fmt.Sprintf("%d of %d", state.Cursor+1, len(state.Results))))
	return lines
}

func renderResult(rec records.Record, query string, selected bool, width int) []string {
	cursorMark := "  "
	if selected {
		cursorMark = "> "
	}

	title := truncateToWidth(rec.Title, width-4)
	titleLine := cursorMark + search.Render(search.Highlight(title, query), markMatch)
	if selected {
		titleLine = getStyles().SelectedStyle.Render(titleLine)
	}
	if date := records.Value(rec.Date); date != "" {
		titleLine += " " + getStyles().SubtleStyle.Render("("+date+")")
	}

	desc := truncateToWidth(rec.Description, width-4)
	descLine := "    " + search.Render(search.Highlight(desc, query), markMatch)
	if len(rec.Tags) > 0 {
		descLine += " " + getStyles().SubtleStyle.Render("#"+strings.Join(rec.Tags, " #"))
	}
	return []string{titleLine, descLine}
}

func renderFooter(state RenderState, width int) string {
	footer := "Type to search • Tab tags • Ctrl+R reset • Ctrl+U clear • Enter done • Esc cancel"
	if state.TagsFocus {
		footer = "←/→ move • Space toggle • a all • Tab search • Enter toggle • Esc cancel"
	}
	return getStyles().FooterStyle.Render(truncateToWidth(footer, width))
}

func markMatch(s string) string {
	return getStyles().MatchStyle.Render(s)
}

// truncateToWidth shortens plain text to width runes.
func truncateToWidth(text string, width int) string {
	runes := []rune(text)
	if width <= 0 || len(runes) <= width {
		return text
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
