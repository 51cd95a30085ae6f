package hclconfig

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/varzip/internal/config"
	"github.com/vk/varzip/internal/ctxlog"
	"github.com/vk/varzip/internal/descriptor"
)

// translateProject converts a decoded project block into the config model.
func (l *Loader) translateProject(ctx context.Context, block *Project, file string, evalCtx *hcl.EvalContext) (*config.Project, error) {
	logger := ctxlog.FromContext(ctx).With("project", block.Path)

	project, err := config.NewProject(block.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	project.BuildTypes = block.BuildTypes
	project.Source = file

	for _, vb := range block.Variants {
		variant, err := l.translateVariant(project, block, vb, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("%s: project %s: %w", file, block.Path, err)
		}
		if err := project.AddVariant(variant); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}

	logger.Debug("Translated project.", "variants", len(project.Variants), "build_types", project.BuildTypes)
	return project, nil
}

func (l *Loader) translateVariant(project *config.Project, pb *Project, vb *Variant, evalCtx *hcl.EvalContext) (*config.Variant, error) {
	deps, diags := decodeDeps(vb.Deps, evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("variant %s: %w", vb.Name, diags)
	}

	packageName := vb.PackageName
	if packageName == "" {
		packageName = pb.PackageName
	}

	return &config.Variant{
		Name:      vb.Name,
		BuildType: vb.BuildType,
		Descriptor: &descriptor.LibraryDescriptor{
			Name:        project.DescriptorName(vb.Name),
			PackageName: packageName,
			Srcs:        vb.Srcs,
			Resources:   vb.Resources,
			Assets:      vb.Assets,
			Manifest:    vb.Manifest,
			BuildConfig: vb.BuildConfig,
			ResValues:   vb.ResValues,
			Deps:        deps,
		},
	}, nil
}
