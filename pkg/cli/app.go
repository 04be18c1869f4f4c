package cli

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.seanlatimer.dev/folio/internal/bookmarks"
	"go.seanlatimer.dev/folio/internal/cache"
	"go.seanlatimer.dev/folio/internal/config"
	"go.seanlatimer.dev/folio/internal/content"
	"go.seanlatimer.dev/folio/internal/querystate"
	"go.seanlatimer.dev/folio/internal/search"
)

// app is what every command needs: settled config, loaded content and an
// engine configured from both.
type app struct {
	cfg    config.Config
	lib    content.Library
	engine search.Engine
}

func loadConfig(opts *Options) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if strings.TrimSpace(opts.ConfigPath) != "" {
		cfg, err = config.LoadConfigFile(opts.ConfigPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return config.Config{}, err
	}
	cfg = cfg.ApplyEnv()
	if strings.TrimSpace(opts.ContentDir) != "" {
		cfg.ContentDir = opts.ContentDir
	}
	return cfg.WithDefaults(), nil
}

func loadApp(opts *Options) (app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return app{}, err
	}

	dir, err := contentDir(cfg)
	if err != nil {
		return app{}, err
	}
	lib, err := content.Load(dir)
	if err != nil {
		return app{}, fmt.Errorf("load content: %w", err)
	}
	lib.TagOverride = cfg.AllowedTags
	log.WithFields(log.Fields{
		"projects": len(lib.Projects),
		"posts":    len(lib.Posts),
		"dir":      dir,
	}).Debug("content loaded")

	return app{
		cfg:    cfg,
		lib:    lib,
		engine: search.NewEngine(cfg.Threshold),
	}, nil
}

// contentDir prefers an explicit directory, then a synced content
// repository. Empty selects the built-in content.
func contentDir(cfg config.Config) (string, error) {
	if cfg.ContentDir != "" {
		return cfg.ContentDir, nil
	}
	initialized, err := cache.IsCacheInitialized()
	if err != nil {
		return "", err
	}
	if !initialized {
		return "", nil
	}
	return cache.GetCachePath()
}

// allowedTags prefers the configured allow-list over the per-kind one.
func (a app) allowedTags(kind content.Kind) []string {
	return a.lib.Allowed(kind)
}

// savedState resolves a saved search by name.
func savedState(name string) (string, querystate.State, error) {
	b, ok, err := bookmarks.Find(name)
	if err != nil {
		return "", querystate.State{}, err
	}
	if !ok {
		return "", querystate.State{}, fmt.Errorf("%w: %s", bookmarks.ErrBookmarkNotFound, name)
	}
	return b.State()
}
