package executor

import (
	"context"
	"log/slog"

	"github.com/vk/varzip/internal/compress"
	"github.com/vk/varzip/internal/ctxlog"
	"github.com/vk/varzip/internal/descriptor"
)

// compressProject compresses one project against the results of its direct
// dependencies and stores the outcome.
func (e *Executor) compressProject(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)
	project := e.model.Projects[path]

	deps := project.ProjectDeps()
	depResults := e.results.ResultsFor(ctx, deps)
	for _, dep := range deps {
		if _, ok := depResults[dep]; !ok {
			logger.Warn("Dependency has no compression result; it will not block compression.", "dependency", dep)
		}
	}

	descriptors := project.Descriptors()
	result, decisions := e.compressor.Compress(descriptors, project.BuildTypeOf, depResults)
	for _, d := range decisions {
		logDecision(ctx, d, descriptors)
	}

	if err := e.results.Put(ctx, path, result); err != nil {
		return err
	}

	e.mu.Lock()
	e.decisions[path] = decisions
	e.mu.Unlock()

	logger.Info("Project compressed.",
		"variants", len(result.VariantSuffix),
		"targets", len(result.Targets),
		"expanded_build_types", result.Expanded(),
		"fully_compressed", result.FullyCompressed(),
	)
	return nil
}

func logDecision(ctx context.Context, d compress.Decision, descriptors map[string]*descriptor.LibraryDescriptor) {
	logger := ctxlog.FromContext(ctx)
	switch d := d.(type) {
	case compress.Compressed:
		logger.Debug("Compressed build type.", "build_type", d.BuildType, "variants", d.Variants, "suffix", d.Suffix)
	case compress.Expanded:
		logger.Debug("Expanded build type.", "build_type", d.BuildType, "variants", d.Variants, "reason", d.Reason)
		if d.Reason == compress.ReasonVariantsDiffer && len(d.Variants) > 1 && logger.Enabled(ctx, slog.LevelDebug) {
			// First mismatch only; the representative is the first variant.
			rep := descriptors[d.Variants[0]]
			for _, v := range d.Variants[1:] {
				if diff := descriptor.Diff(rep, descriptors[v]); diff != "" {
					logger.Debug("Variants differ.", "variant", d.Variants[0], "other", v, "diff", diff)
					break
				}
			}
		}
	case compress.SingleVariant:
		logger.Debug("Single variant build type.", "build_type", d.BuildType, "variant", d.Variant, "suffix", d.Suffix)
	case compress.FullyCompressed:
		logger.Debug("Fully compressed project.", "build_types", d.BuildTypes, "variants", len(d.Variants))
	}
}
