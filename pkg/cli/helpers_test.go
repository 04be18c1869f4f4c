package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"go.seanlatimer.dev/folio/internal/config"
)

// setupCLITest points the config directory at a temp dir and clears
// environment overrides.
func setupCLITest(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("APPDATA", tmpDir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmpDir, "cache"))
	t.Setenv(config.EnvContentDir, "")
	t.Setenv(config.EnvContentRepo, "")
	t.Setenv(config.EnvListenAddr, "")
	config.Reload()
	t.Cleanup(config.Reload)

	color.NoColor = true
	return tmpDir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(&Options{})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
