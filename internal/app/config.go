package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/varzip/internal/report"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Paths are .hcl files or directories holding project definitions.
	Paths []string

	LogFormat    string
	LogLevel     string
	WorkerCount  int
	ReportFormat string
	// EquivalenceCacheSize bounds the memoised descriptor comparisons.
	// Zero disables the cache.
	EquivalenceCacheSize int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one project path is required")
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.ReportFormat == "" {
		cfg.ReportFormat = string(report.FormatText)
	}
	format, err := report.ParseFormat(cfg.ReportFormat)
	if err != nil {
		return nil, err
	}
	cfg.ReportFormat = string(format)

	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("invalid workers %d: must be at least 1", cfg.WorkerCount)
	}
	if cfg.EquivalenceCacheSize < 0 {
		return nil, fmt.Errorf("invalid equivalence-cache %d: must not be negative", cfg.EquivalenceCacheSize)
	}

	return &cfg, nil
}
