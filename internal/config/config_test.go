package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// setupConfigTest points the XDG config home at a temporary directory and
// returns it.
func setupConfigTest(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	if runtime.GOOS == "windows" {
		t.Setenv("LOCALAPPDATA", tmpDir)
	}
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	Reload()
	t.Cleanup(Reload)
	return tmpDir
}

func TestGetConfigDir(t *testing.T) {
	tmpDir := setupConfigTest(t)

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(dir, configDirName) {
		t.Errorf("GetConfigDir() = %q, want path containing %q", dir, configDirName)
	}
	if runtime.GOOS != "windows" && dir != filepath.Join(tmpDir, configDirName) {
		t.Errorf("GetConfigDir() = %q, want %q", dir, filepath.Join(tmpDir, configDirName))
	}
}

func TestGetConfigPath(t *testing.T) {
	setupConfigTest(t)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if !strings.HasSuffix(path, configFileName) {
		t.Errorf("GetConfigPath() = %q, want path ending with %q", path, configFileName)
	}
	if !strings.Contains(path, configDirName) {
		t.Errorf("GetConfigPath() = %q, want path containing %q", path, configDirName)
	}
}

func TestGetSavedPath(t *testing.T) {
	setupConfigTest(t)

	path, err := GetSavedPath()
	if err != nil {
		t.Fatalf("GetSavedPath() error = %v", err)
	}

	if !strings.HasSuffix(path, savedFileName) {
		t.Errorf("GetSavedPath() = %q, want path ending with %s", path, savedFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if !strings.Contains(string(data), "saved:") {
		t.Errorf("GetSavedPath() saved file content = %q, want containing 'saved:'", string(data))
	}

	// An existing file is left alone.
	if err := os.WriteFile(path, []byte("saved:\n  - name: x\n"), 0o644); err != nil {
		t.Fatalf("failed to write saved file: %v", err)
	}
	if _, err := GetSavedPath(); err != nil {
		t.Fatalf("GetSavedPath() second call error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if !strings.Contains(string(data), "name: x") {
		t.Errorf("GetSavedPath() overwrote existing file: %q", string(data))
	}
}

func TestLoadConfig(t *testing.T) {
	setupConfigTest(t)

	tests := []struct {
		name    string
		setup   func()
		want    Config
		wantErr bool
	}{
		{
			name: "valid config",
			setup: func() {
				cfg := Config{
					ContentDir: "/srv/content",
					DebounceMS: 50,
					Threshold:  0.3,
				}
				if err := SaveConfig(cfg); err != nil {
					t.Fatalf("SaveConfig() error = %v", err)
				}
			},
			want: Config{
				ContentDir: "/srv/content",
				DebounceMS: 50,
				Threshold:  0.3,
			},
		},
		{
			name: "missing config file",
			setup: func() {
				path, err := GetConfigPath()
				if err == nil {
					if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
						t.Logf("failed to remove config file: %v", err)
					}
				}
			},
			want: Config{},
		},
		{
			name: "empty config",
			setup: func() {
				if err := SaveConfig(Config{}); err != nil {
					t.Fatalf("SaveConfig() error = %v", err)
				}
			},
			want: Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			cfg, err := LoadConfig()
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if cfg.ContentDir != tt.want.ContentDir {
				t.Errorf("LoadConfig() ContentDir = %q, want %q", cfg.ContentDir, tt.want.ContentDir)
			}
			if cfg.DebounceMS != tt.want.DebounceMS {
				t.Errorf("LoadConfig() DebounceMS = %d, want %d", cfg.DebounceMS, tt.want.DebounceMS)
			}
			if cfg.Threshold != tt.want.Threshold {
				t.Errorf("LoadConfig() Threshold = %v, want %v", cfg.Threshold, tt.want.Threshold)
			}
		})
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	setupConfigTest(t)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}

	invalidJSON := `{"content_dir": "test", invalid}`
	if err := os.WriteFile(path, []byte(invalidJSON), 0o644); err != nil {
		t.Fatalf("failed to write invalid config: %v", err)
	}

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() expected error for invalid JSON, got nil")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	if err := os.WriteFile(path, []byte(`{"listen_addr": ":9000", "allowed_tags": ["Go"]}`), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("LoadConfigFile() ListenAddr = %q, want %q", cfg.ListenAddr, ":9000")
	}
	if len(cfg.AllowedTags) != 1 || cfg.AllowedTags[0] != "Go" {
		t.Errorf("LoadConfigFile() AllowedTags = %v, want [Go]", cfg.AllowedTags)
	}

	cfg, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadConfigFile() missing file error = %v", err)
	}
	if cfg.ListenAddr != "" {
		t.Errorf("LoadConfigFile() missing file = %+v, want zero config", cfg)
	}
}

func TestSaveConfig(t *testing.T) {
	setupConfigTest(t)

	cfg := Config{
		ContentDir:  "/srv/content",
		BasePath:    "/blog",
		ListenAddr:  ":8081",
		AllowedTags: []string{"Tech"},
	}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("failed to unmarshal config: %v", err)
	}
	if loaded.BasePath != cfg.BasePath || loaded.ListenAddr != cfg.ListenAddr {
		t.Errorf("SaveConfig() round trip = %+v, want %+v", loaded, cfg)
	}

	// Indented output
	if !strings.Contains(string(data), "\n  \"content_dir\"") {
		t.Errorf("SaveConfig() output not indented: %q", string(data))
	}
}

func TestWithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "zero config",
			in:   Config{},
			want: Config{BasePath: DefaultBasePath, DebounceMS: DefaultDebounceMS, Threshold: DefaultThreshold, ListenAddr: DefaultListenAddr},
		},
		{
			name: "explicit values kept",
			in:   Config{ContentDir: "c", BasePath: "/blog", DebounceMS: 10, Threshold: 0.7, ListenAddr: ":1"},
			want: Config{ContentDir: "c", BasePath: "/blog", DebounceMS: 10, Threshold: 0.7, ListenAddr: ":1"},
		},
		{
			name: "relative base path and bad threshold",
			in:   Config{BasePath: "blog", Threshold: 3},
			want: Config{BasePath: "/blog", DebounceMS: DefaultDebounceMS, Threshold: DefaultThreshold, ListenAddr: DefaultListenAddr},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.WithDefaults()
			if got.ContentDir != tt.want.ContentDir || got.BasePath != tt.want.BasePath ||
				got.DebounceMS != tt.want.DebounceMS || got.Threshold != tt.want.Threshold ||
				got.ListenAddr != tt.want.ListenAddr {
				t.Errorf("WithDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvContentDir, "/env/content")
	t.Setenv(EnvContentRepo, "https://example.com/content.git")
	t.Setenv(EnvListenAddr, "")

	cfg := Config{ContentDir: "/file/content", ListenAddr: ":7000"}.ApplyEnv()
	if cfg.ContentDir != "/env/content" {
		t.Errorf("ApplyEnv() ContentDir = %q, want %q", cfg.ContentDir, "/env/content")
	}
	if cfg.ContentRepo != "https://example.com/content.git" {
		t.Errorf("ApplyEnv() ContentRepo = %q, want %q", cfg.ContentRepo, "https://example.com/content.git")
	}
	if cfg.ListenAddr != ":7000" {
		t.Errorf("ApplyEnv() ListenAddr = %q, want %q", cfg.ListenAddr, ":7000")
	}
}

func TestDebounce(t *testing.T) {
	if got := (Config{DebounceMS: 150}).Debounce(); got != 150*time.Millisecond {
		t.Errorf("Debounce() = %v, want 150ms", got)
	}
}
