package content

import (
	"errors"
	"fmt"
	"strings"

	"go.seanlatimer.dev/folio/internal/records"
)

var ErrDuplicateID = errors.New("duplicate record id")

// Library holds every loaded project and post in file order.
type Library struct {
	Projects []Project
	Posts    []Post
	// TagOverride replaces the per-kind allow-lists when set.
	TagOverride []string
}

// ProjectRecords drops project tags outside the allow-list.
func (l Library) ProjectRecords() []records.Record {
	return records.Normalize(l.Projects, projectAccessors(l.Allowed(KindProjects)))
}

func (l Library) PostRecords() []records.Record {
	return records.Normalize(l.Posts, postAccessors(l.Allowed(KindPosts)))
}

// Records returns records of the given kind; KindAll lists projects before
// posts.
func (l Library) Records(kind Kind) []records.Record {
	switch kind {
	case KindProjects:
		return l.ProjectRecords()
	case KindPosts:
		return l.PostRecords()
	default:
		return append(l.ProjectRecords(), l.PostRecords()...)
	}
}

// AllowedTags returns the tag filter allow-list for kind. KindAll has none.
func AllowedTags(kind Kind) []string {
	switch kind {
	case KindProjects:
		return ProjectTags
	case KindPosts:
		return PostTags
	default:
		return nil
	}
}

// Allowed is AllowedTags with the library's override applied.
func (l Library) Allowed(kind Kind) []string {
	if len(l.TagOverride) > 0 {
		return l.TagOverride
	}
	return AllowedTags(kind)
}

func (l Library) Lookup(id string) (records.Record, bool) {
	return records.Find(l.Records(KindAll), id)
}

func (l Library) Project(id string) (Project, bool) {
	for _, p := range l.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

func (l Library) Post(slug string) (Post, bool) {
	for _, p := range l.Posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}

// Images lists hero images and screenshots in display order, skipping
// repeats of the same source.
func (l Library) Images() []Image {
	var images []Image
	seen := make(map[string]struct{})
	add := func(src, alt string) {
		src = strings.TrimSpace(src)
		if src == "" {
			return
		}
		if _, ok := seen[src]; ok {
			return
		}
		seen[src] = struct{}{}
		images = append(images, Image{Src: src, Alt: alt})
	}
	for _, p := range l.Projects {
		add(p.HeroImage, p.Title)
		for i, shot := range p.Screenshots {
			add(shot, fmt.Sprintf("%s screenshot %d", p.Title, i+1))
		}
	}
	for _, p := range l.Posts {
		add(p.HeroImage, p.Title)
	}
	return images
}

type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Validate rejects libraries whose ids collide across projects and posts.
func (l Library) Validate() error {
	for _, p := range l.Projects {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("project %q: missing id", p.Title)
		}
	}
	for _, p := range l.Posts {
		if strings.TrimSpace(p.Slug) == "" {
			return fmt.Errorf("post %q: missing slug", p.Title)
		}
	}
	if dups := records.DuplicateIDs(l.Records(KindAll)); len(dups) > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, strings.Join(dups, ", "))
	}
	return nil
}
