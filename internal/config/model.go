package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/vk/varzip/internal/descriptor"
)

var (
	// ErrDuplicateProject is returned when two definitions share a project path.
	ErrDuplicateProject = errors.New("duplicate project")
	// ErrDuplicateVariant is returned when a project defines a variant twice.
	ErrDuplicateVariant = errors.New("duplicate variant")
	// ErrInvalidProjectPath is returned for project paths not starting with ':'.
	ErrInvalidProjectPath = errors.New("invalid project path")
)

// PathSeparator separates the segments of a project path such as ":feature:login".
const PathSeparator = ":"

// Model is the unified, format-agnostic representation of a project graph.
type Model struct {
	Projects map[string]*Project
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Projects: make(map[string]*Project)}
}

// AddProject registers p, rejecting a second project with the same path.
func (m *Model) AddProject(p *Project) error {
	if _, exists := m.Projects[p.Path]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProject, p.Path)
	}
	m.Projects[p.Path] = p
	return nil
}

// ProjectPaths returns every project path in sorted order.
func (m *Model) ProjectPaths() []string {
	return slices.Sorted(maps.Keys(m.Projects))
}

// VariantCount returns the number of variants over all projects.
func (m *Model) VariantCount() int {
	n := 0
	for _, p := range m.Projects {
		n += len(p.Variants)
	}
	return n
}

// Project is one module of the build, identified by its path.
type Project struct {
	// Path is the project path, e.g. ":app" or ":feature:login".
	Path string
	// BuildTypes lists the declared build types used to classify variants
	// that do not name theirs explicitly.
	BuildTypes []string
	Variants   map[string]*Variant
	// Source is where the project was defined, for diagnostics.
	Source string
}

// NewProject returns an empty project, validating its path.
func NewProject(path string) (*Project, error) {
	if !strings.HasPrefix(path, PathSeparator) {
		return nil, fmt.Errorf("%w: %q must start with %q", ErrInvalidProjectPath, path, PathSeparator)
	}
	return &Project{Path: path, Variants: make(map[string]*Variant)}, nil
}

// AddVariant registers v, rejecting a second variant with the same name.
func (p *Project) AddVariant(v *Variant) error {
	if _, exists := p.Variants[v.Name]; exists {
		return fmt.Errorf("%w: %s in project %s", ErrDuplicateVariant, v.Name, p.Path)
	}
	p.Variants[v.Name] = v
	return nil
}

// BaseName is the last segment of the project path; targets are named
// after it. The root project ":" is called "root".
func (p *Project) BaseName() string {
	segments := strings.Split(strings.Trim(p.Path, PathSeparator), PathSeparator)
	if last := segments[len(segments)-1]; last != "" {
		return last
	}
	return "root"
}

// DescriptorName is the name of the descriptor of variant, "<base>-<variant>".
func (p *Project) DescriptorName(variant string) string {
	return p.BaseName() + "-" + variant
}

// Descriptors returns the descriptor of every variant keyed by variant name.
func (p *Project) Descriptors() map[string]*descriptor.LibraryDescriptor {
	out := make(map[string]*descriptor.LibraryDescriptor, len(p.Variants))
	for name, v := range p.Variants {
		out[name] = v.Descriptor
	}
	return out
}

// ProjectDeps returns, sorted and without duplicates, the paths of every
// project referenced by any variant.
func (p *Project) ProjectDeps() []string {
	seen := make(map[string]struct{})
	for _, v := range p.Variants {
		for _, dep := range v.Descriptor.ProjectDeps() {
			seen[dep] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// BuildTypeOf classifies a variant. An explicit build type wins; otherwise
// the longest declared build type that is a case-insensitive suffix of the
// variant name is used; otherwise the lower-cased variant name itself.
func (p *Project) BuildTypeOf(variant string) string {
	if v, ok := p.Variants[variant]; ok && v.BuildType != "" {
		return v.BuildType
	}
	lower := strings.ToLower(variant)
	best := ""
	for _, bt := range p.BuildTypes {
		if strings.HasSuffix(lower, strings.ToLower(bt)) && len(bt) > len(best) {
			best = bt
		}
	}
	if best != "" {
		return best
	}
	return lower
}

// Variant is one build variant of a project.
type Variant struct {
	Name string
	// BuildType is set when the definition names it explicitly.
	BuildType  string
	Descriptor *descriptor.LibraryDescriptor
}
