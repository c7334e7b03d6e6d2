package app

import (
	"errors"
	"fmt"
)

// Config holds everything an App needs that does not come from the
// workspace file. Non-zero fields override the workspace settings.
type Config struct {
	// WorkspacePath names the workspace file. Empty means discover
	// pipeconf.hcl in WorkDir, falling back to defaults.
	WorkspacePath string
	WorkDir       string

	CatalogPath string
	Tool        string
	LayoutURL   string
	Workers     int

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("invalid workers: must not be negative, got %d", cfg.Workers)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck-port: %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
