package app

import (
	"errors"

	"github.com/vk/colorgrid/internal/report"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScenePath    string // hcl file or directory
	OutputFormat report.Format

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	WorkerCount     int

	Watch      bool
	PublishURL string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenePath == "" {
		return nil, errors.New("ScenePath is a required configuration field and cannot be empty")
	}

	if cfg.OutputFormat == "" {
		cfg.OutputFormat = report.FormatText
	}
	format, err := report.ParseFormat(string(cfg.OutputFormat))
	if err != nil {
		return nil, err
	}
	cfg.OutputFormat = format

	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, errors.New("HealthcheckPort must be between 0 and 65535")
	}
	return &cfg, nil
}
