package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestURLCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "empty state", args: []string{"url"}, want: "/search"},
		{name: "query", args: []string{"url", "--query", "  machine learning "}, want: "/search?q=machine+learning"},
		{name: "tags", args: []string{"url", "--tag", "Python", "--tag", "NLP", "--tag", "Python"}, want: "/search?tags=Python%2CNLP"},
		{name: "path", args: []string{"url", "--path", "/projects", "--query", "go"}, want: "/projects?q=go"},
		{name: "existing url", args: []string{"url", "/blogs?tags=tech&q=notes&utm=x"}, want: "/blogs?q=notes&tags=tech"},
		{name: "existing url with overrides", args: []string{"url", "/blogs?q=notes", "--query", "", "--tag", "dev"}, want: "/blogs?tags=dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			output, err := runCommand(t, tt.args...)
			if err != nil {
				t.Fatalf("url error = %v", err)
			}
			if got := strings.TrimSpace(output); got != tt.want {
				t.Errorf("url = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestURLCommandConfiguredBasePath(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"base_path": "portfolio"}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	output, err := runCommand(t, "--config", path, "url", "--query", "ai")
	if err != nil {
		t.Fatalf("url error = %v", err)
	}
	if got := strings.TrimSpace(output); got != "/portfolio?q=ai" {
		t.Errorf("url = %q, want %q", got, "/portfolio?q=ai")
	}
}

func TestURLCommandInvalidURL(t *testing.T) {
	setupCLITest(t)
	if _, err := runCommand(t, "url", "/search?q=%zz"); err != nil {
		// url.Parse accepts malformed query escapes; only the path is strict.
		t.Fatalf("url error = %v", err)
	}
	if _, err := runCommand(t, "url", "/sea%zzrch"); err == nil {
		t.Error("url with malformed path escape expected error, got nil")
	}
}
