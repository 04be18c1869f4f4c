// Package records normalizes portfolio entities into plain, serializable
// records consumed by the search engine and every rendering surface.
package records

import (
	"errors"
	"strings"
)

var ErrMissingAccessor = errors.New("id and title accessors are required")

// Record is the normalized projection of an entity. Optional fields are
// nil when absent so they serialize as JSON null; Tags is never nil.
type Record struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Href        *string  `json:"href" yaml:"href"`
	Date        *string  `json:"date" yaml:"date"`
	Tags        []string `json:"tags" yaml:"tags"`
	Image       *string  `json:"image" yaml:"image"`
}

// Accessors extracts record fields from an entity of type T. Only GetID
// and GetTitle are mandatory.
type Accessors[T any] struct {
	GetID          func(T) string
	GetTitle       func(T) string
	GetDescription func(T) string
	GetHref        func(T) string
	GetDate        func(T) string
	GetTags        func(T) []string
	GetImage       func(T) string
}

func (a Accessors[T]) Validate() error {
	if a.GetID == nil || a.GetTitle == nil {
		return ErrMissingAccessor
	}
	return nil
}

// Normalize returns one record per entity in input order.
func Normalize[T any](entities []T, accessors Accessors[T]) []Record {
	out := make([]Record, 0, len(entities))
	for _, entity := range entities {
		out = append(out, normalizeOne(entity, accessors))
	}
	return out
}

func normalizeOne[T any](entity T, a Accessors[T]) Record {
	rec := Record{
		ID:    callString(a.GetID, entity),
		Title: callString(a.GetTitle, entity),
		Tags:  []string{},
	}
	rec.Description = callString(a.GetDescription, entity)
	rec.Href = optional(callString(a.GetHref, entity))
	rec.Date = optional(callString(a.GetDate, entity))
	rec.Image = optional(callString(a.GetImage, entity))
	if a.GetTags != nil {
		for _, tag := range a.GetTags(entity) {
			if strings.TrimSpace(tag) == "" {
				continue
			}
			rec.Tags = append(rec.Tags, tag)
		}
	}
	return rec
}

func callString[T any](fn func(T) string, entity T) string {
	if fn == nil {
		return ""
	}
	return fn(entity)
}

func optional(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

// DuplicateIDs lists ids that occur more than once, in first-seen order.
// Normalize does not reject duplicates; keyed rendering is the caller's concern.
func DuplicateIDs(recs []Record) []string {
	seen := make(map[string]int, len(recs))
	var dups []string
	for _, rec := range recs {
		seen[rec.ID]++
		if seen[rec.ID] == 2 {
			dups = append(dups, rec.ID)
		}
	}
	return dups
}

// Find returns the first record with the given id.
func Find(recs []Record, id string) (Record, bool) {
	for _, rec := range recs {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

// Value dereferences an optional field, returning "" when absent.
func Value(field *string) string {
	if field == nil {
		return ""
	}
	return *field
}

// HasTag reports whether the record carries tag exactly.
func (r Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
