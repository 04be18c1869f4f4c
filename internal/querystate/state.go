// Package querystate binds a search state to the q and tags parameters of
// a URL query string, writing changes back through a debounced router.
package querystate

import (
	"net/url"
	"strings"
)

const (
	ParamQuery = "q"
	ParamTags  = "tags"

	tagSeparator = ","
)

// State is the user-facing search state. Tags keep insertion order and
// contain no duplicates once normalized.
type State struct {
	Query string   `json:"query" yaml:"query"`
	Tags  []string `json:"tags" yaml:"tags"`
}

// Normalize drops empty and repeated tags, keeping first occurrences.
func (s State) Normalize() State {
	out := State{Query: s.Query, Tags: make([]string, 0, len(s.Tags))}
	seen := make(map[string]struct{}, len(s.Tags))
	for _, tag := range s.Tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out.Tags = append(out.Tags, tag)
	}
	return out
}

func (s State) IsZero() bool {
	return strings.TrimSpace(s.Query) == "" && len(s.Normalize().Tags) == 0
}

func (s State) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Values returns the query parameters for s. The query is trimmed; empty
// parameters are omitted.
func (s State) Values() url.Values {
	s = s.Normalize()
	values := url.Values{}
	if q := strings.TrimSpace(s.Query); q != "" {
		values.Set(ParamQuery, q)
	}
	if len(s.Tags) > 0 {
		values.Set(ParamTags, strings.Join(s.Tags, tagSeparator))
	}
	return values
}

// Encode renders path with the state's query string. The same state always
// yields the same string; an empty state yields the bare path.
func Encode(path string, s State) string {
	if path == "" {
		path = "/"
	}
	query := s.Values().Encode()
	if query == "" {
		return path
	}
	return path + "?" + query
}

// Decode reads q and tags. Tags are split on commas; tag names containing
// commas are not representable.
func Decode(values url.Values) State {
	s := State{Query: values.Get(ParamQuery)}
	if raw := values.Get(ParamTags); raw != "" {
		s.Tags = strings.Split(raw, tagSeparator)
	}
	return s.Normalize()
}

// Parse splits a URL into its path and decoded state.
func Parse(rawURL string) (string, State, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", State{}, err
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return path, Decode(u.Query()), nil
}

// Canonical re-encodes rawURL with sorted, escaped parameters so that
// equivalent spellings compare equal. Unparseable input is returned as is.
func Canonical(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	query := u.Query().Encode()
	if query == "" {
		return path
	}
	return path + "?" + query
}
