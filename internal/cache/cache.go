// Package cache keeps a local checkout of a git repository holding content
// files, so a portfolio can be loaded from a published content repo.
package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	defaultAppDirName  = "folio"
	defaultRepoDirName = "content"
)

var ErrNotInitialized = errors.New("content cache not initialized; run folio sync <repo-url>")

type Status struct {
	Initialized bool   `json:"initialized"`
	Path        string `json:"path"`
	Remote      string `json:"remote,omitempty"`
	HeadCommit  string `json:"head_commit,omitempty"`
}

func GetCachePath() (string, error) {
	if xdg.CacheHome == "" {
		return "", errors.New("no cache directory available")
	}
	return filepath.Join(xdg.CacheHome, defaultAppDirName, defaultRepoDirName), nil
}

func IsCacheInitialized() (bool, error) {
	cachePath, err := GetCachePath()
	if err != nil {
		return false, err
	}
	info, err := os.Stat(cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if !info.IsDir() {
		return false, nil
	}

	gitDir := filepath.Join(cachePath, ".git")
	if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
		return true, nil
	}
	return false, nil
}

// InitializeCache clones repoURL into the cache. An existing checkout is
// left as is.
func InitializeCache(ctx context.Context, repoURL string) (string, error) {
	cachePath, err := GetCachePath()
	if err != nil {
		return "", err
	}

	initialized, err := IsCacheInitialized()
	if err != nil {
		return "", err
	}
	if initialized {
		return cachePath, nil
	}
	if repoURL == "" {
		return "", ErrNotInitialized
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	if err := CloneRepo(ctx, repoURL, cachePath); err != nil {
		return "", err
	}

	return cachePath, nil
}

// UpdateCache fast-forwards the checkout from its origin.
func UpdateCache(ctx context.Context) (string, error) {
	cachePath, err := GetCachePath()
	if err != nil {
		return "", err
	}

	initialized, err := IsCacheInitialized()
	if err != nil {
		return "", err
	}
	if !initialized {
		return "", ErrNotInitialized
	}

	if err := PullRepo(ctx, cachePath); err != nil {
		return "", err
	}

	return cachePath, nil
}

// Remove deletes the checkout.
func Remove() error {
	cachePath, err := GetCachePath()
	if err != nil {
		return err
	}
	if err := os.RemoveAll(cachePath); err != nil {
		return fmt.Errorf("remove content cache: %w", err)
	}
	return nil
}

func GetStatus() (Status, error) {
	cachePath, err := GetCachePath()
	if err != nil {
		return Status{}, err
	}

	initialized, err := IsCacheInitialized()
	if err != nil {
		return Status{}, err
	}

	status := Status{
		Initialized: initialized,
		Path:        cachePath,
	}

	if initialized {
		head, err := GetHeadCommit(cachePath)
		if err != nil {
			return Status{}, err
		}
		status.HeadCommit = head
		status.Remote, err = GetRemoteURL(cachePath)
		if err != nil {
			return Status{}, err
		}
	}

	return status, nil
}
