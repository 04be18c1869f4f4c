package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

const (
	projectsFile = "projects"
	postsFile    = "posts"
)

// Default returns the built-in library.
func Default() (Library, error) {
	return loadFS(defaultFS, "defaults")
}

// Load reads dir when set and falls back to the built-in library otherwise.
func Load(dir string) (Library, error) {
	if strings.TrimSpace(dir) == "" {
		return Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return Library{}, fmt.Errorf("stat content dir: %w", err)
	}
	if !info.IsDir() {
		return Library{}, fmt.Errorf("content dir %s: not a directory", dir)
	}
	return loadFS(os.DirFS(dir), ".")
}

// loadFS walks root for projects.yaml and posts.yaml files at any depth.
// Files are merged in walk order. Hidden directories are skipped.
func loadFS(fsys fs.FS, root string) (Library, error) {
	var lib Library
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}

		switch fileKind(d.Name()) {
		case projectsFile:
			var projects []Project
			if err := decodeFile(fsys, path, &projects); err != nil {
				return err
			}
			log.WithFields(log.Fields{"file": path, "count": len(projects)}).Debug("loaded projects")
			lib.Projects = append(lib.Projects, projects...)
		case postsFile:
			var posts []Post
			if err := decodeFile(fsys, path, &posts); err != nil {
				return err
			}
			log.WithFields(log.Fields{"file": path, "count": len(posts)}).Debug("loaded posts")
			lib.Posts = append(lib.Posts, posts...)
		}
		return nil
	})
	if err != nil {
		return Library{}, err
	}
	if err := lib.Validate(); err != nil {
		return Library{}, err
	}
	return lib, nil
}

func fileKind(name string) string {
	ext := filepath.Ext(name)
	lower := strings.ToLower(ext)
	if lower != ".yaml" && lower != ".yml" {
		return ""
	}
	return strings.ToLower(strings.TrimSuffix(name, ext))
}

func decodeFile(fsys fs.FS, path string, out any) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
