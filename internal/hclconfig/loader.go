package hclconfig

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/varzip/internal/config"
	"github.com/vk/varzip/internal/ctxlog"
	"github.com/vk/varzip/internal/fsutil"
)

// Extension is the file extension of project definition files.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load discovers every .hcl file under paths and merges all project blocks
// into a single model. A project defined in two files is an error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(Extension, paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := l.decodeInto(ctx, model, file, hclFile.Body); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.", "projects", len(model.Projects), "variants", model.VariantCount())
	return model, nil
}

// LoadSource decodes a single in-memory file. filename is only used in
// diagnostics.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	model := config.NewModel()
	if err := l.decodeInto(ctx, model, filename, hclFile.Body); err != nil {
		return nil, err
	}
	return model, nil
}

func (l *Loader) decodeInto(ctx context.Context, model *config.Model, file string, body hcl.Body) error {
	evalCtx := evalContext()

	var root fileRoot
	if diags := gohcl.DecodeBody(body, evalCtx, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}

	for _, block := range root.Projects {
		project, err := l.translateProject(ctx, block, file, evalCtx)
		if err != nil {
			return err
		}
		if err := model.AddProject(project); err != nil {
			if prev, ok := model.Projects[project.Path]; ok {
				return fmt.Errorf("%w (defined in %s and %s)", err, prev.Source, file)
			}
			return err
		}
	}
	return nil
}
