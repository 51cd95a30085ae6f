package app

import (
	"context"
	"fmt"

	"github.com/vk/varzip/internal/compress"
	"github.com/vk/varzip/internal/descriptor"
	"github.com/vk/varzip/internal/executor"
	"github.com/vk/varzip/internal/inmemoryresults"
	"github.com/vk/varzip/internal/projectgraph"
	"github.com/vk/varzip/internal/report"
)

// Run loads the project definitions, compresses every project and writes
// the report.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.", "paths", a.config.Paths)

	model, err := a.loader.Load(ctx, a.config.Paths...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Info("Configuration loaded.", "projects", len(model.Projects), "variants", model.VariantCount())

	graph, err := projectgraph.Build(ctx, model)
	if err != nil {
		return fmt.Errorf("failed to build project graph: %w", err)
	}

	checker, err := a.checker()
	if err != nil {
		return err
	}

	a.logger.Info("Starting compression...", "workers", a.config.WorkerCount)
	exec := executor.New(model, graph, inmemoryresults.New(), compress.New(checker), a.config.WorkerCount)
	p, err := exec.Run(ctx)
	if err != nil {
		return fmt.Errorf("compression failed: %w", err)
	}
	a.plan = p

	stats := p.Stats()
	a.logger.Info("Compression finished.",
		"projects", stats.Projects,
		"variants", stats.Variants,
		"targets", stats.Targets,
		"fully_compressed", stats.FullyCompressed,
	)

	if err := report.Write(a.outW, p, report.Format(a.config.ReportFormat)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) checker() (descriptor.Checker, error) {
	if a.config.EquivalenceCacheSize == 0 {
		return descriptor.Structural, nil
	}
	cc, err := descriptor.NewCachingChecker(descriptor.Structural, a.config.EquivalenceCacheSize)
	if err != nil {
		return nil, err
	}
	return cc, nil
}
