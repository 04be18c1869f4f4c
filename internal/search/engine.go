// Package search filters and ranks normalized records by tag and by a
// fuzzy text query, and highlights literal query occurrences.
package search

import (
	"sort"
	"strings"

	"go.seanlatimer.dev/folio/internal/records"
)

// DefaultThreshold accepts loosely related records; 0 means no relation
// and 1 an exact match.
const DefaultThreshold = 0.4

// Result pairs a record with its relevance score. Score is 0 when no query
// was given.
type Result struct {
	Record records.Record `json:"record"`
	Score  float64        `json:"score"`
}

// Engine runs tag and text filtering with a fixed relevance threshold.
type Engine struct {
	Threshold float64
}

func NewEngine(threshold float64) Engine {
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 1 {
		threshold = 1
	}
	return Engine{Threshold: threshold}
}

var defaultEngine = NewEngine(DefaultThreshold)

// Filter applies the default engine.
func Filter(recs []records.Record, query string, activeTags []string) []records.Record {
	return defaultEngine.Filter(recs, query, activeTags)
}

func (e Engine) Filter(recs []records.Record, query string, activeTags []string) []records.Record {
	results := e.Search(recs, query, activeTags)
	out := make([]records.Record, 0, len(results))
	for _, r := range results {
		out = append(out, r.Record)
	}
	return out
}

// Search returns the visible records. Without a query the tag-filtered
// records keep their original order; with one they are ranked by score,
// then by case-insensitive title.
func (e Engine) Search(recs []records.Record, query string, activeTags []string) []Result {
	candidates := FilterByTags(recs, activeTags)

	q := strings.TrimSpace(query)
	if q == "" {
		results := make([]Result, 0, len(candidates))
		for _, rec := range candidates {
			results = append(results, Result{Record: rec})
		}
		return results
	}

	pq := prepareQuery(q)
	results := make([]Result, 0, len(candidates))
	for _, rec := range candidates {
		score := scoreRecord(pq, rec)
		if score <= 0 || score < e.Threshold {
			continue
		}
		results = append(results, Result{Record: rec, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return compareFold(results[i].Record.Title, results[j].Record.Title) < 0
	})
	return results
}

// FilterByTags keeps records carrying at least one active tag. Matching is
// exact and case-sensitive; no active tags keeps everything.
func FilterByTags(recs []records.Record, activeTags []string) []records.Record {
	if len(activeTags) == 0 {
		return recs
	}
	active := make(map[string]struct{}, len(activeTags))
	for _, tag := range activeTags {
		active[tag] = struct{}{}
	}

	out := make([]records.Record, 0, len(recs))
	for _, rec := range recs {
		for _, tag := range rec.Tags {
			if _, ok := active[tag]; ok {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
