// Package bookmarks stores named search URLs.
package bookmarks

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"go.seanlatimer.dev/folio/internal/config"
	"go.seanlatimer.dev/folio/internal/querystate"
	"gopkg.in/yaml.v3"
)

var (
	ErrBookmarkExists   = errors.New("bookmark already exists")
	ErrBookmarkNotFound = errors.New("bookmark not found")
)

type Bookmark struct {
	Name    string `yaml:"name" json:"name"`
	Key     string `yaml:"key" json:"key"`
	URL     string `yaml:"url" json:"url"`
	Created string `yaml:"created" json:"created"`
	Updated string `yaml:"updated" json:"updated"`
}

// State decodes the bookmarked URL.
func (b Bookmark) State() (string, querystate.State, error) {
	return querystate.Parse(b.URL)
}

type Store struct {
	Saved []Bookmark `yaml:"saved"`
}

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatDashes = regexp.MustCompile(`-{2,}`)
)

// SluggifyName derives the lookup key for a bookmark name.
func SluggifyName(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.NewReplacer(" ", "-", "_", "-").Replace(slug)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = repeatDashes.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "search"
	}
	return slug
}

func Load() (Store, error) {
	path, err := config.GetSavedPath()
	if err != nil {
		return Store{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return Store{}, fmt.Errorf("read saved searches: %w", err)
	}

	var store Store
	if err := yaml.Unmarshal(data, &store); err != nil {
		return Store{}, fmt.Errorf("parse saved searches: %w", err)
	}
	return store, nil
}

func Save(store Store) error {
	path, err := config.GetSavedPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(store)
	if err != nil {
		return fmt.Errorf("marshal saved searches: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write saved searches: %w", err)
	}
	return nil
}

func (s Store) index(nameOrKey string) int {
	key := SluggifyName(nameOrKey)
	for i, b := range s.Saved {
		if strings.EqualFold(b.Name, nameOrKey) || b.Key == key {
			return i
		}
	}
	return -1
}

// Find matches by name (case-insensitive) or key.
func Find(nameOrKey string) (Bookmark, bool, error) {
	store, err := Load()
	if err != nil {
		return Bookmark{}, false, err
	}
	if i := store.index(nameOrKey); i >= 0 {
		return store.Saved[i], true, nil
	}
	return Bookmark{}, false, nil
}

// Create stores rawURL under name in canonical form.
func Create(name, rawURL string) (Bookmark, error) {
	if strings.TrimSpace(name) == "" {
		return Bookmark{}, errors.New("bookmark name is required")
	}
	canonical, err := canonicalURL(rawURL)
	if err != nil {
		return Bookmark{}, err
	}

	store, err := Load()
	if err != nil {
		return Bookmark{}, err
	}
	if store.index(name) >= 0 {
		return Bookmark{}, fmt.Errorf("%w: %s", ErrBookmarkExists, name)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	b := Bookmark{
		Name:    name,
		Key:     SluggifyName(name),
		URL:     canonical,
		Created: now,
		Updated: now,
	}
	store.Saved = append(store.Saved, b)
	return b, Save(store)
}

func Update(nameOrKey, rawURL string) error {
	canonical, err := canonicalURL(rawURL)
	if err != nil {
		return err
	}

	store, err := Load()
	if err != nil {
		return err
	}

	i := store.index(nameOrKey)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBookmarkNotFound, nameOrKey)
	}
	store.Saved[i].URL = canonical
	store.Saved[i].Updated = time.Now().UTC().Format(time.RFC3339)
	return Save(store)
}

func Delete(nameOrKey string) error {
	store, err := Load()
	if err != nil {
		return err
	}

	i := store.index(nameOrKey)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBookmarkNotFound, nameOrKey)
	}
	store.Saved = append(store.Saved[:i], store.Saved[i+1:]...)
	return Save(store)
}

func List() ([]Bookmark, error) {
	store, err := Load()
	if err != nil {
		return nil, err
	}
	return store.Saved, nil
}

func canonicalURL(rawURL string) (string, error) {
	path, state, err := querystate.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	return querystate.Encode(path, state), nil
}
