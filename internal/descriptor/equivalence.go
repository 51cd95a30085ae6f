package descriptor

import (
	"cmp"
	"slices"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Checker decides whether two descriptors may share one build target.
type Checker interface {
	Equivalent(a, b *LibraryDescriptor) bool
}

// CheckerFunc adapts a plain function to the Checker interface.
type CheckerFunc func(a, b *LibraryDescriptor) bool

// Equivalent calls f(a, b).
func (f CheckerFunc) Equivalent(a, b *LibraryDescriptor) bool {
	return f(a, b)
}

// Structural is the default Checker. It compares descriptors field by field
// with Equivalent.
var Structural Checker = CheckerFunc(Equivalent)

// Name is the variant-specific part of a descriptor and never takes part in
// the comparison. Lists are canonicalised before comparing, so only the
// nil/empty distinction is left for cmp to paper over.
var equivalenceOptions = gocmp.Options{
	cmpopts.IgnoreFields(LibraryDescriptor{}, "Name"),
	cmpopts.EquateEmpty(),
}

// Equivalent reports whether a and b are interchangeable for build purposes:
// same package, manifest, sources, resources, assets, build config fields,
// resource values and dependencies. List order and duplicates are irrelevant.
func Equivalent(a, b *LibraryDescriptor) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return gocmp.Equal(canonical(a), canonical(b), equivalenceOptions)
}

// Diff describes what makes a and b non-equivalent in cmp's diff notation,
// or returns "" when they are equivalent.
func Diff(a, b *LibraryDescriptor) string {
	if a == nil || b == nil {
		if a == b {
			return ""
		}
		return "one descriptor is nil"
	}
	return gocmp.Diff(canonical(a), canonical(b), equivalenceOptions)
}

// canonical returns a copy of d whose lists are sorted sets.
func canonical(d *LibraryDescriptor) LibraryDescriptor {
	c := *d
	c.Srcs = stringSet(d.Srcs)
	c.Resources = stringSet(d.Resources)
	c.Assets = stringSet(d.Assets)
	c.Deps = slices.SortedFunc(slices.Values(d.Deps), compareDeps)
	c.Deps = slices.Compact(c.Deps)
	return c
}

func stringSet(in []string) []string {
	out := slices.Sorted(slices.Values(in))
	return slices.Compact(out)
}

func compareDeps(a, b Dependency) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return cmp.Compare(a.Ref, b.Ref)
}
