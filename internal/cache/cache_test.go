package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// setupCacheTest points xdg.CacheHome at a temp dir. xdg reads the
// environment at init time, so the variable is overridden directly.
func setupCacheTest(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	original := xdg.CacheHome
	xdg.CacheHome = tmpDir
	t.Cleanup(func() { xdg.CacheHome = original })
	return tmpDir
}

// newSourceRepo creates a repository with a projects.yaml commit and
// returns its path and the commit hash.
func newSourceRepo(t *testing.T) (string, *git.Repository, string) {
	t.Helper()
	repoPath := filepath.Join(t.TempDir(), "source")
	repo, err := git.PlainInit(repoPath, false)
	if err != nil {
		t.Fatalf("PlainInit() error = %v", err)
	}
	hash := commitFile(t, repo, repoPath, "projects.yaml", "- id: first\n  title: First\n")
	return repoPath, repo, hash
}

func commitFile(t *testing.T, repo *git.Repository, repoPath, name, data string) string {
	t.Helper()
	if err := os.WriteFile(filepath.Join(repoPath, name), []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree() error = %v", err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	hash, err := wt.Commit("Update "+name, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	return hash.String()
}

func TestGetCachePath(t *testing.T) {
	tmpDir := setupCacheTest(t)

	path, err := GetCachePath()
	if err != nil {
		t.Fatalf("GetCachePath() error = %v", err)
	}
	want := filepath.Join(tmpDir, defaultAppDirName, defaultRepoDirName)
	if path != want {
		t.Errorf("GetCachePath() = %q, want %q", path, want)
	}
}

func TestIsCacheInitialized(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, path string)
		want  bool
	}{
		{
			name:  "missing directory",
			setup: func(t *testing.T, path string) {},
			want:  false,
		},
		{
			name: "directory without .git",
			setup: func(t *testing.T, path string) {
				if err := os.MkdirAll(path, 0o755); err != nil {
					t.Fatalf("mkdir: %v", err)
				}
			},
			want: false,
		},
		{
			name: "file instead of directory",
			setup: func(t *testing.T, path string) {
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					t.Fatalf("mkdir: %v", err)
				}
				if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
					t.Fatalf("write: %v", err)
				}
			},
			want: false,
		},
		{
			name: "directory with .git",
			setup: func(t *testing.T, path string) {
				if err := os.MkdirAll(filepath.Join(path, ".git"), 0o755); err != nil {
					t.Fatalf("mkdir: %v", err)
				}
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCacheTest(t)
			path, err := GetCachePath()
			if err != nil {
				t.Fatalf("GetCachePath() error = %v", err)
			}
			tt.setup(t, path)

			got, err := IsCacheInitialized()
			if err != nil {
				t.Fatalf("IsCacheInitialized() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsCacheInitialized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInitializeCacheRequiresURL(t *testing.T) {
	setupCacheTest(t)

	if _, err := InitializeCache(context.Background(), ""); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("InitializeCache(\"\") error = %v, want ErrNotInitialized", err)
	}
	if _, err := UpdateCache(context.Background()); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("UpdateCache() error = %v, want ErrNotInitialized", err)
	}
}

func TestCloneRepoInvalidURL(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "dest")
	err := CloneRepo(context.Background(), filepath.Join(t.TempDir(), "missing"), dest)
	if err == nil {
		t.Fatal("CloneRepo() expected error for missing repository, got nil")
	}
	if !strings.Contains(err.Error(), "git clone") {
		t.Errorf("CloneRepo() error = %v, want error containing %q", err, "git clone")
	}
}

func TestSyncLifecycle(t *testing.T) {
	setupCacheTest(t)
	ctx := context.Background()
	sourcePath, source, firstHash := newSourceRepo(t)

	cachePath, err := InitializeCache(ctx, sourcePath)
	if err != nil {
		t.Fatalf("InitializeCache() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(cachePath, "projects.yaml")); err != nil {
		t.Errorf("cloned checkout missing projects.yaml: %v", err)
	}

	status, err := GetStatus()
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if !status.Initialized || status.HeadCommit != firstHash || status.Remote != sourcePath {
		t.Errorf("GetStatus() = %+v, want initialized at %s from %s", status, firstHash, sourcePath)
	}

	// A second initialize keeps the existing checkout.
	if again, err := InitializeCache(ctx, "ignored"); err != nil || again != cachePath {
		t.Errorf("InitializeCache() again = %q, %v", again, err)
	}

	// Pulling with nothing new is not an error.
	if _, err := UpdateCache(ctx); err != nil {
		t.Fatalf("UpdateCache() up to date error = %v", err)
	}

	secondHash := commitFile(t, source, sourcePath, "posts.yaml", "- slug: hello\n  title: Hello\n")
	if _, err := UpdateCache(ctx); err != nil {
		t.Fatalf("UpdateCache() error = %v", err)
	}
	head, err := GetHeadCommit(cachePath)
	if err != nil {
		t.Fatalf("GetHeadCommit() error = %v", err)
	}
	if head != secondHash {
		t.Errorf("GetHeadCommit() after pull = %q, want %q", head, secondHash)
	}

	if err := Remove(); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if ok, _ := IsCacheInitialized(); ok {
		t.Error("cache still initialized after Remove()")
	}
}

func TestGetHeadCommitNotARepo(t *testing.T) {
	if _, err := GetHeadCommit(t.TempDir()); err == nil {
		t.Error("GetHeadCommit() expected error outside a repository, got nil")
	}
}

func TestGetRemoteURLWithoutOrigin(t *testing.T) {
	repoPath, _, _ := newSourceRepo(t)
	remote, err := GetRemoteURL(repoPath)
	if err != nil {
		t.Fatalf("GetRemoteURL() error = %v", err)
	}
	if remote != "" {
		t.Errorf("GetRemoteURL() = %q, want empty", remote)
	}
}
