// Package tui provides the interactive terminal browser for portfolio
// search.
package tui

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
	"go.seanlatimer.dev/folio/internal/querystate"
	"go.seanlatimer.dev/folio/internal/records"
	"go.seanlatimer.dev/folio/internal/search"
)

var ErrCancelled = errors.New("browse cancelled")

type focusArea int

const (
	focusQuery focusArea = iota
	focusTags
)

type BrowseOptions struct {
	Records []records.Record
	// Tags are the filter chips in display order.
	Tags   []string
	Engine search.Engine
	Sync   *querystate.Synchronizer
	// Location reports the URL shown in the footer.
	Location func() string
}

// settledMsg arrives after the synchronizer has written the URL.
type settledMsg struct {
	state querystate.State
}

type browseModel struct {
	opts      BrowseOptions
	input     textinput.Model
	state     querystate.State
	results   []search.Result
	cursor    int
	tagCursor int
	focus     focusArea
	location  string
	width     int
	height    int
	done      bool
	cancelled bool
}

// ShowBrowser runs the browser until the user confirms or cancels and
// returns the final state. The synchronizer must already be initialized.
func ShowBrowser(opts BrowseOptions) (querystate.State, error) {
	model := newBrowseModel(opts)

	program := tea.NewProgram(model)
	defer subscribe(program, opts.Sync)()

	result, err := program.Run()
	if err != nil {
		return querystate.State{}, err
	}

	final := result.(browseModel)
	if final.cancelled {
		return querystate.State{}, ErrCancelled
	}
	opts.Sync.Flush()
	return opts.Sync.State(), nil
}

// subscribe forwards settled states to program. Send runs on its own
// goroutine since Reset notifies from inside Update, where a blocking
// Send would never be received.
func subscribe(program *tea.Program, sync *querystate.Synchronizer) func() {
	return sync.OnChange(func(st querystate.State) {
		go program.Send(settledMsg{state: st})
	})
}

func newBrowseModel(opts BrowseOptions) browseModel {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Search..."
	input.Focus()

	state := opts.Sync.State()
	input.SetValue(state.Query)

	m := browseModel{
		opts:  opts,
		input: input,
		state: state,
	}
	m.location = m.currentLocation()
	m.refresh()
	return m
}

func (m browseModel) Init() tea.Cmd {
	return tea.RequestBackgroundColor
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.BackgroundColorMsg:
		appStyles = newStyles()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(msg.Width-12, 10))
		return m, nil
	case settledMsg:
		m.location = m.currentLocation()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if m.focus == focusTags {
				m.toggleTagAtCursor()
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case "ctrl+r":
			m.reset()
			return m, nil
		case "ctrl+u":
			m.setQuery("")
			return m, nil
		}

		if m.focus == focusTags {
			m.handleTagKey(msg.String())
			return m, nil
		}
	}

	if m.focus != focusQuery {
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.opts.Sync.SetQuery(after)
		m.state = m.opts.Sync.State()
		m.refresh()
	}
	return m, cmd
}

func (m *browseModel) handleTagKey(key string) {
	switch key {
	case "left", "h":
		if m.tagCursor > 0 {
			m.tagCursor--
		}
	case "right", "l":
		if m.tagCursor < len(m.opts.Tags) {
			m.tagCursor++
		}
	case "space", " ", "x":
		m.toggleTagAtCursor()
	case "a":
		m.clearTags()
	}
}

func (m *browseModel) toggleFocus() {
	if m.focus == focusQuery {
		m.focus = focusTags
		m.input.Blur()
		return
	}
	m.focus = focusQuery
	m.input.Focus()
}

// toggleTagAtCursor treats position 0 as the "All" chip.
func (m *browseModel) toggleTagAtCursor() {
	if m.tagCursor == 0 {
		m.clearTags()
		return
	}
	idx := m.tagCursor - 1
	if idx >= len(m.opts.Tags) {
		return
	}
	m.opts.Sync.ToggleTag(m.opts.Tags[idx])
	m.state = m.opts.Sync.State()
	m.refresh()
}

func (m *browseModel) clearTags() {
	m.opts.Sync.ClearTags()
	m.state = m.opts.Sync.State()
	m.refresh()
}

func (m *browseModel) setQuery(q string) {
	m.input.SetValue(q)
	m.opts.Sync.SetQuery(q)
	m.state = m.opts.Sync.State()
	m.refresh()
}

func (m *browseModel) reset() {
	m.opts.Sync.Reset()
	m.input.SetValue("")
	m.state = m.opts.Sync.State()
	m.tagCursor = 0
	m.location = m.currentLocation()
	m.refresh()
}

func (m *browseModel) refresh() {
	m.results = m.opts.Engine.Search(m.opts.Records, m.state.Query, m.state.Tags)
	m.cursor = clampCursor(m.cursor, len(m.results))
}

func (m browseModel) currentLocation() string {
	if m.opts.Location == nil {
		return ""
	}
	return m.opts.Location()
}

func (m browseModel) View() tea.View {
	state := RenderState{
		Input:     m.input.View(),
		Query:     m.state.Query,
		Tags:      m.opts.Tags,
		Active:    m.state.Tags,
		TagCursor: m.tagCursor,
		TagsFocus: m.focus == focusTags,
		Results:   m.results,
		Cursor:    m.cursor,
		Location:  m.location,
		Width:     m.width,
		Height:    m.height,
	}
	v := tea.NewView("")
	v.SetContent(RenderUI(state))
	v.AltScreen = true
	v.WindowTitle = "folio"
	return v
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
