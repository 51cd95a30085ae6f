package compress

import (
	"maps"
	"slices"

	"github.com/vk/varzip/internal/descriptor"
)

// Result is the outcome of compressing one project. It must not be modified
// after Compress returns it; dependents read it concurrently.
type Result struct {
	// Targets maps each emitted suffix to the descriptor of its target.
	Targets map[string]*descriptor.LibraryDescriptor
	// VariantSuffix maps every input variant to the suffix of the target
	// that builds it.
	VariantSuffix map[string]string
	// ExpandedBuildTypes holds the build types whose variants could not be
	// merged.
	ExpandedBuildTypes map[string]struct{}
}

func newResult() *Result {
	return &Result{
		Targets:            make(map[string]*descriptor.LibraryDescriptor),
		VariantSuffix:      make(map[string]string),
		ExpandedBuildTypes: make(map[string]struct{}),
	}
}

// FullyCompressed reports whether the whole project is a single unsuffixed
// target. It is derived from the other fields on every call.
func (r *Result) FullyCompressed() bool {
	if r == nil || len(r.ExpandedBuildTypes) != 0 || len(r.Targets) != 1 {
		return false
	}
	_, ok := r.Targets[FullSuffix]
	return ok
}

// IsExpanded reports whether buildType stayed expanded.
func (r *Result) IsExpanded(buildType string) bool {
	if r == nil {
		return false
	}
	_, ok := r.ExpandedBuildTypes[buildType]
	return ok
}

// Suffixes returns the target suffixes in sorted order.
func (r *Result) Suffixes() []string {
	return slices.Sorted(maps.Keys(r.Targets))
}

// Variants returns the input variant names in sorted order.
func (r *Result) Variants() []string {
	return slices.Sorted(maps.Keys(r.VariantSuffix))
}

// Expanded returns the expanded build types in sorted order.
func (r *Result) Expanded() []string {
	return slices.Sorted(maps.Keys(r.ExpandedBuildTypes))
}
