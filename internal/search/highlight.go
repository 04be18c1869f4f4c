package search

import (
	"regexp"
	"strings"
)

// Segment is a run of text that either matched the query or did not.
type Segment struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

// Highlight splits text into segments marking every case-insensitive,
// literal, non-overlapping occurrence of the trimmed query, leftmost first.
// Joining the segments always reproduces text.
func Highlight(text, query string) []Segment {
	q := strings.TrimSpace(query)
	if q == "" || text == "" {
		return []Segment{{Text: text}}
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(q))
	if err != nil {
		return []Segment{{Text: text}}
	}

	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, Segment{Text: text[last:m[0]]})
		}
		segments = append(segments, Segment{Text: text[m[0]:m[1]], Matched: true})
		last = m[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// Join concatenates segment text.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Render concatenates segments, passing matched ones through mark.
func Render(segments []Segment, mark func(string) string) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Matched && mark != nil {
			b.WriteString(mark(s.Text))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
