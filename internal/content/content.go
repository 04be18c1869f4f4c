// Package content provides the portfolio's projects and posts and their
// projections into search records.
package content

import (
	"errors"
	"fmt"
	"strings"

	"go.seanlatimer.dev/folio/internal/records"
)

var ErrUnknownKind = errors.New("unknown content kind")

type Kind string

const (
	KindAll      Kind = "all"
	KindProjects Kind = "projects"
	KindPosts    Kind = "posts"
)

// ParseKind accepts the kind names plus a few singular and empty forms.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return KindAll, nil
	case "projects", "project":
		return KindProjects, nil
	case "posts", "post", "blogs", "blog":
		return KindPosts, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Tags shown in project and post tag filters. Matching is case-insensitive.
var (
	ProjectTags         = []string{"Python", "GenAI", "ASR", "TTS", "NLP", "React", "Next.js", "JS/TS", "Go", "Bash", "Powershell", "Web Dev"}
	FeaturedProjectTags = []string{"Web Dev", "NLP", "GenAI", "Python", "React", "Next.js", "JS/TS"}
	PostTags            = []string{"Tech"}
)

type Link struct {
	URL  string `yaml:"url" json:"url"`
	Type string `yaml:"type" json:"type"`
}

type Project struct {
	ID               string   `yaml:"id" json:"id"`
	Title            string   `yaml:"title" json:"title"`
	Description      string   `yaml:"description" json:"description"`
	Year             string   `yaml:"year,omitempty" json:"year,omitempty"`
	Tech             []string `yaml:"tech,omitempty" json:"tech,omitempty"`
	Links            []Link   `yaml:"links,omitempty" json:"links,omitempty"`
	HeroImage        string   `yaml:"heroImage,omitempty" json:"heroImage,omitempty"`
	Screenshots      []string `yaml:"screenshots,omitempty" json:"screenshots,omitempty"`
	Tags             []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Status           string   `yaml:"status,omitempty" json:"status,omitempty"`
	ProblemStatement string   `yaml:"problemStatement,omitempty" json:"problemStatement,omitempty"`
	Solution         string   `yaml:"solution,omitempty" json:"solution,omitempty"`
}

type Post struct {
	Slug        string   `yaml:"slug" json:"slug"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Date        string   `yaml:"date" json:"date"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	HeroImage   string   `yaml:"heroImage,omitempty" json:"heroImage,omitempty"`
}

var (
	ProjectAccessors = projectAccessors(ProjectTags)
	PostAccessors    = postAccessors(PostTags)
)

func projectAccessors(allowed []string) records.Accessors[Project] {
	return records.Accessors[Project]{
		GetID:          func(p Project) string { return p.ID },
		GetTitle:       func(p Project) string { return p.Title },
		GetDescription: func(p Project) string { return p.Description },
		GetHref:        func(p Project) string { return "/projects/" + p.ID },
		GetDate:        func(p Project) string { return p.Year },
		GetTags:        func(p Project) []string { return FilterTags(p.Tags, allowed) },
		GetImage:       func(p Project) string { return p.HeroImage },
	}
}

func postAccessors(allowed []string) records.Accessors[Post] {
	return records.Accessors[Post]{
		GetID:          func(p Post) string { return p.Slug },
		GetTitle:       func(p Post) string { return p.Title },
		GetDescription: func(p Post) string { return p.Description },
		GetHref:        func(p Post) string { return "/blogs/" + p.Slug },
		GetDate:        func(p Post) string { return p.Date },
		GetTags:        func(p Post) []string { return FilterTags(p.Tags, allowed) },
		GetImage:       func(p Post) string { return p.HeroImage },
	}
}

// FilterTags keeps the tags that case-insensitively match an entry of
// allowed, in their original order and spelling. An empty allowed keeps
// every tag.
func FilterTags(tags, allowed []string) []string {
	if len(allowed) == 0 {
		return tags
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		for _, a := range allowed {
			if strings.EqualFold(tag, a) {
				out = append(out, tag)
				break
			}
		}
	}
	return out
}
