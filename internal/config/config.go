// Package config loads and saves the doctainr configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appDir     = "doctainr"
	configFile = "config.yaml"
	logFile    = "doctainr.log"

	// DefaultRefreshSeconds is the dashboard auto-refresh interval.
	DefaultRefreshSeconds = 5
)

type Config struct {
	// DockerHost is the daemon endpoint, e.g. unix:///var/run/docker.sock.
	// Empty means resolve from the environment (DOCKER_HOST or the
	// platform default socket).
	DockerHost     string `yaml:"docker_host"`
	RefreshSeconds int    `yaml:"refresh_interval_seconds"`
	Log            Log    `yaml:"log"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		RefreshSeconds: DefaultRefreshSeconds,
		Log:            Log{Level: "info"},
	}
	if dir, err := os.UserConfigDir(); err == nil {
		cfg.Log.File = filepath.Join(dir, appDir, logFile)
	}
	return cfg
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, appDir, configFile), nil
}

// Load reads the config file at path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.RefreshSeconds <= 0 {
		cfg.RefreshSeconds = DefaultRefreshSeconds
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
