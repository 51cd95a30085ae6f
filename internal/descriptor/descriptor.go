// Package descriptor holds the per-variant build configuration that the
// compression engine reads, and the equivalence relation over it.
package descriptor

import (
	"fmt"
	"strings"
)

// DependencyKind tags a Dependency as either a reference to another project
// in the graph or a reference to an external package.
type DependencyKind int

const (
	// ProjectDependency references another project by its path, e.g. ":lib".
	ProjectDependency DependencyKind = iota
	// ExternalDependency references a package coordinate, e.g. "androidx.core:core:1.12.0".
	ExternalDependency
)

func (k DependencyKind) String() string {
	switch k {
	case ProjectDependency:
		return "project"
	case ExternalDependency:
		return "external"
	default:
		return fmt.Sprintf("DependencyKind(%d)", int(k))
	}
}

// Dependency is one entry of a descriptor's dependency list.
type Dependency struct {
	Kind DependencyKind
	Ref  string
}

// Project returns a dependency on the project at path.
func Project(path string) Dependency {
	return Dependency{Kind: ProjectDependency, Ref: path}
}

// External returns a dependency on an external package coordinate.
func External(coordinate string) Dependency {
	return Dependency{Kind: ExternalDependency, Ref: coordinate}
}

// IsProject reports whether d references a project in the graph.
func (d Dependency) IsProject() bool {
	return d.Kind == ProjectDependency
}

func (d Dependency) String() string {
	return d.Kind.String() + "(" + d.Ref + ")"
}

// LibraryDescriptor is the build configuration of one variant of a project.
// Descriptors are treated as immutable once constructed; derived copies are
// produced with WithName.
type LibraryDescriptor struct {
	// Name is the generated target name, conventionally "<base>-<variant>".
	// It is never part of equivalence.
	Name        string
	PackageName string
	Srcs        []string
	Resources   []string
	Assets      []string
	Manifest    string
	BuildConfig map[string]string
	ResValues   map[string]string
	Deps        []Dependency
}

// WithName returns a shallow copy of d carrying a different name. Slices and
// maps are shared with d, which is safe because descriptors are never mutated.
func (d *LibraryDescriptor) WithName(name string) *LibraryDescriptor {
	c := *d
	c.Name = name
	return &c
}

// ProjectDeps returns the paths of every project dependency of d, in
// declaration order and without duplicates.
func (d *LibraryDescriptor) ProjectDeps() []string {
	var paths []string
	seen := make(map[string]struct{})
	for _, dep := range d.Deps {
		if !dep.IsProject() {
			continue
		}
		if _, ok := seen[dep.Ref]; ok {
			continue
		}
		seen[dep.Ref] = struct{}{}
		paths = append(paths, dep.Ref)
	}
	return paths
}

// StripSuffix returns name without suffix when name ends with it, and name
// unchanged otherwise.
func StripSuffix(name, suffix string) string {
	return strings.TrimSuffix(name, suffix)
}
