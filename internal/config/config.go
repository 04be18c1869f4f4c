// Package config manages folio configuration settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

const (
	configDirName  = "folio"
	configFileName = "config.json"
	savedFileName  = "saved.yaml"

	EnvContentDir  = "FOLIO_CONTENT_DIR"
	EnvContentRepo = "FOLIO_CONTENT_REPO"
	EnvListenAddr  = "FOLIO_LISTEN_ADDR"

	DefaultBasePath   = "/search"
	DefaultDebounceMS = 200
	DefaultThreshold  = 0.4
	DefaultListenAddr = "127.0.0.1:8080"
)

// Config holds user settings. Zero values mean "use the default"; an empty
// ContentDir selects the synced content repository, then the built-in
// content.
type Config struct {
	ContentDir  string   `json:"content_dir"`
	ContentRepo string   `json:"content_repo"`
	BasePath    string   `json:"base_path"`
	DebounceMS  int      `json:"debounce_ms"`
	Threshold   float64  `json:"threshold"`
	ListenAddr  string   `json:"listen_addr"`
	AllowedTags []string `json:"allowed_tags"`
}

func init() {
	preferDotConfig()
}

// preferDotConfig uses ~/.config on macOS instead of
// ~/Library/Application Support unless XDG_CONFIG_HOME is set.
func preferDotConfig() {
	if runtime.GOOS == "darwin" && os.Getenv("XDG_CONFIG_HOME") == "" {
		xdg.ConfigHome = filepath.Join(xdg.Home, ".config")
	}
}

// Reload re-reads the XDG environment.
func Reload() {
	xdg.Reload()
	preferDotConfig()
}

func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.BasePath) == "" {
		c.BasePath = DefaultBasePath
	}
	if !strings.HasPrefix(c.BasePath, "/") {
		c.BasePath = "/" + c.BasePath
	}
	if c.DebounceMS <= 0 {
		c.DebounceMS = DefaultDebounceMS
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		c.Threshold = DefaultThreshold
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = DefaultListenAddr
	}
	return c
}

// ApplyEnv overrides fields from FOLIO_* environment variables.
func (c Config) ApplyEnv() Config {
	if v := strings.TrimSpace(os.Getenv(EnvContentDir)); v != "" {
		c.ContentDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvContentRepo)); v != "" {
		c.ContentRepo = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvListenAddr)); v != "" {
		c.ListenAddr = v
	}
	return c
}

func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

func GetConfigDir() (string, error) {
	return filepath.Join(xdg.ConfigHome, configDirName), nil
}

func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// GetSavedPath returns the saved searches file, creating an empty one if
// needed.
func GetSavedPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}

	path := filepath.Join(dir, savedFileName)
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("check saved file: %w", err)
		}
		if err := os.WriteFile(path, []byte("saved: []\n"), 0o644); err != nil {
			return "", fmt.Errorf("create saved file: %w", err)
		}
	}
	return path, nil
}

func LoadConfig() (Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile reads path. A missing file yields a zero Config.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func SaveConfig(cfg Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
