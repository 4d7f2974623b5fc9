package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields shopwatch needs to reach the storefront.
type Config struct {
	APIBase          string
	AlertPollSeconds int
}

const (
	defaultConfigPath       = "~/.config/shopwatch/config.toml"
	defaultAPIBase          = "http://127.0.0.1:5000"
	defaultAlertPollSeconds = 60
)

// Load locates and parses the shopwatch config, falling back to
// defaults when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{APIBase: defaultAPIBase, AlertPollSeconds: defaultAlertPollSeconds}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase          string `toml:"api_base"`
		AlertPollSeconds int    `toml:"alert_poll_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBase = strings.TrimSpace(raw.APIBase)
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}

	if raw.AlertPollSeconds > 0 {
		cfg.AlertPollSeconds = raw.AlertPollSeconds
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
