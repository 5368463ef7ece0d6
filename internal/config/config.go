// Package config persists user preferences for huntctl. Only preferences
// live here (service address, theme); problems and results never persist.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultBaseURL is the solving service address used when nothing is
// configured.
const DefaultBaseURL = "http://localhost:5000"

// EnvBaseURL overrides the configured service address when set.
const EnvBaseURL = "HUNTCTL_BASE_URL"

// Config holds user preferences
type Config struct {
	BaseURL string `json:"base_url"`
	Theme   string `json:"theme"` // "light" or "dark"
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Theme:   "light",
	}
}

// ConfigDir returns the directory where config is stored
func ConfigDir() (string, error) {
	// Prefer project-local .huntctl directory if present
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".huntctl")
		if stat, err := os.Stat(localDir); err == nil && stat.IsDir() {
			return localDir, nil
		}
	}

	// Fallback to home-level config
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".huntctl"), nil
}

// ConfigFile returns the full path to the config file
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk, applying the environment
// override for the service address on top.
func Load() (Config, error) {
	cfg, err := load()
	if url := os.Getenv(EnvBaseURL); url != "" {
		cfg.BaseURL = url
	}
	return cfg, err
}

func load() (Config, error) {
	path, err := ConfigFile()
	if err != nil {
		return DefaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Theme == "" {
		cfg.Theme = "light"
	}

	return cfg, nil
}

// Save writes the configuration to disk
func Save(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigFile()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
