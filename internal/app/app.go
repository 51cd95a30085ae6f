package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/varzip/internal/config"
	"github.com/vk/varzip/internal/ctxlog"
	"github.com/vk/varzip/internal/plan"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	plan   *plan.Plan
}

// NewApp is the constructor for the main application. The report goes to
// outW and logs go to logW, so the report stays machine readable.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}

// Plan returns the plan computed by the last successful Run.
func (a *App) Plan() *plan.Plan {
	return a.plan
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
