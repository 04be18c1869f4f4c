package querystate

import (
	"fmt"
	"net/url"
	"sync"
)

// Router is the URL surface the synchronizer reads from and writes to.
type Router interface {
	// QueryParam returns the named parameter of the current URL.
	QueryParam(name string) (string, bool)
	// Path returns the current path without query string.
	Path() string
	// Current returns the current path and query string.
	Current() string
	// Replace swaps the current URL without adding a history entry.
	Replace(rawURL string) error
}

// MemoryRouter keeps the location in memory. It records history pushes
// made by Navigate so back/forward can be simulated.
type MemoryRouter struct {
	mu      sync.Mutex
	current *url.URL
	history []string
	writes  int
}

func NewMemoryRouter(rawURL string) (*MemoryRouter, error) {
	u, err := parseLocation(rawURL)
	if err != nil {
		return nil, err
	}
	return &MemoryRouter{current: u}, nil
}

func parseLocation(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		rawURL = "/"
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse location: %w", err)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

func (r *MemoryRouter) QueryParam(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	values := r.current.Query()
	if _, ok := values[name]; !ok {
		return "", false
	}
	return values.Get(name), true
}

func (r *MemoryRouter) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Path
}

func (r *MemoryRouter) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return location(r.current)
}

func (r *MemoryRouter) Replace(rawURL string) error {
	u, err := parseLocation(rawURL)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = u
	r.writes++
	return nil
}

// Navigate pushes a new location, as a link click or back/forward would.
func (r *MemoryRouter) Navigate(rawURL string) error {
	u, err := parseLocation(rawURL)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, location(r.current))
	r.current = u
	return nil
}

// Writes counts Replace calls.
func (r *MemoryRouter) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *MemoryRouter) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}

func location(u *url.URL) string {
	if u.RawQuery == "" {
		return u.Path
	}
	return u.Path + "?" + u.RawQuery
}
