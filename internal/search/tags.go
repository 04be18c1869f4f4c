package search

import (
	"sort"
	"strings"

	"go.seanlatimer.dev/folio/internal/records"
)

// TagIndex counts tag occurrences across a record collection. It is
// derived on demand and never mutates the records.
type TagIndex struct {
	Counts map[string]int
	Tags   []string
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

func BuildTagIndex(recs []records.Record) TagIndex {
	counts := make(map[string]int)
	for _, rec := range recs {
		for _, tag := range rec.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			counts[tag]++
		}
	}
	return newTagIndex(counts)
}

func newTagIndex(counts map[string]int) TagIndex {
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		return compareFold(tags[i], tags[j]) < 0
	})
	return TagIndex{Counts: counts, Tags: tags}
}

// Count returns the number of records carrying tag.
func (ti TagIndex) Count(tag string) int {
	return ti.Counts[tag]
}

// List returns tag counts in display order.
func (ti TagIndex) List() []TagCount {
	out := make([]TagCount, 0, len(ti.Tags))
	for _, tag := range ti.Tags {
		out = append(out, TagCount{Tag: tag, Count: ti.Counts[tag]})
	}
	return out
}

// Restrict keeps only tags on the allow-list, compared case-insensitively.
// An empty allow-list keeps everything.
func (ti TagIndex) Restrict(allowed []string) TagIndex {
	if len(allowed) == 0 {
		return ti
	}
	allow := make(map[string]struct{}, len(allowed))
	for _, tag := range allowed {
		allow[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}
	counts := make(map[string]int)
	for tag, n := range ti.Counts {
		if _, ok := allow[strings.ToLower(tag)]; ok {
			counts[tag] = n
		}
	}
	return newTagIndex(counts)
}

// CombinedCount splits a tag's usage between projects and posts.
type CombinedCount struct {
	Tag      string `json:"tag"`
	Projects int    `json:"projects"`
	Posts    int    `json:"posts"`
	Total    int    `json:"total"`
}

// CombineTagCounts merges per-collection indexes, sorted by tag. Each seed
// tag is listed with zero counts unless a used tag already matches it
// case-insensitively.
func CombineTagCounts(projects, posts TagIndex, seed ...string) []CombinedCount {
	all := make(map[string]int)
	folded := make(map[string]struct{})
	for _, idx := range []TagIndex{projects, posts} {
		for tag := range idx.Counts {
			all[tag] = 0
			folded[strings.ToLower(tag)] = struct{}{}
		}
	}
	for _, tag := range seed {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if _, ok := folded[key]; ok || tag == "" {
			continue
		}
		all[tag] = 0
		folded[key] = struct{}{}
	}

	out := make([]CombinedCount, 0, len(all))
	for _, tag := range newTagIndex(all).Tags {
		p, b := projects.Counts[tag], posts.Counts[tag]
		out = append(out, CombinedCount{Tag: tag, Projects: p, Posts: b, Total: p + b})
	}
	return out
}

// Popular orders combined counts by total usage, most used first. A limit
// of zero or less returns every tag.
func Popular(combined []CombinedCount, limit int) []CombinedCount {
	out := append([]CombinedCount(nil), combined...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return compareFold(out[i].Tag, out[j].Tag) < 0
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}
