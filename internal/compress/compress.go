package compress

import (
	"maps"
	"slices"

	"github.com/vk/varzip/internal/descriptor"
)

// BuildTypeFunc classifies a variant name into its build type.
type BuildTypeFunc func(variant string) string

// Compressor merges equivalent variants of a project into shared targets.
// It keeps no state between calls and is safe for concurrent use as long as
// its Checker is.
type Compressor struct {
	checker descriptor.Checker
}

// New returns a Compressor that compares descriptors with checker. A nil
// checker selects descriptor.Structural.
func New(checker descriptor.Checker) *Compressor {
	if checker == nil {
		checker = descriptor.Structural
	}
	return &Compressor{checker: checker}
}

// Compress runs both phases with the structural equivalence checker.
func Compress(
	variants map[string]*descriptor.LibraryDescriptor,
	buildTypeOf BuildTypeFunc,
	deps map[string]*Result,
) (*Result, []Decision) {
	return New(nil).Compress(variants, buildTypeOf, deps)
}

// Compress decides the targets of one project.
//
// variants maps each variant name to its descriptor. deps holds the results
// of the project's direct project dependencies, keyed by project path; a
// dependency missing from deps never blocks compression.
//
// Phase one merges the variants of each build type when no dependency keeps
// that build type expanded and all variants are equivalent. Phase two then
// merges the per-build-type targets into a single unsuffixed target when
// nothing was expanded, the targets are equivalent and every dependency is
// itself fully compressed.
func (c *Compressor) Compress(
	variants map[string]*descriptor.LibraryDescriptor,
	buildTypeOf BuildTypeFunc,
	deps map[string]*Result,
) (*Result, []Decision) {
	result := newResult()
	if len(variants) == 0 {
		return result, nil
	}

	groups := make(map[string][]string)
	for _, name := range slices.Sorted(maps.Keys(variants)) {
		bt := buildTypeOf(name)
		groups[bt] = append(groups[bt], name)
	}

	buildTypes := slices.Sorted(maps.Keys(groups))
	outcomes := make(map[string]outcome, len(groups))
	for _, bt := range buildTypes {
		outcomes[bt] = c.decide(bt, groups[bt], variants, deps)
	}
	expandTakenSuffixes(buildTypes, groups, outcomes)

	var decisions []Decision
	for _, bt := range buildTypes {
		decisions = append(decisions, apply(outcomes[bt], variants, result))
	}

	if merged, ok := c.compressAcrossBuildTypes(result, deps); ok {
		decisions = append(decisions, FullyCompressed{
			BuildTypes: trimmedSuffixes(result),
			Variants:   result.Variants(),
		})
		return merged, decisions
	}
	return result, decisions
}

// decide picks the phase-one outcome of one build type. names is sorted.
func (c *Compressor) decide(
	buildType string,
	names []string,
	variants map[string]*descriptor.LibraryDescriptor,
	deps map[string]*Result,
) outcome {
	if len(names) == 1 {
		return singleOutcome{buildType: buildType, variant: names[0]}
	}

	if blocking := blockingDeps(buildType, names, variants, deps); len(blocking) > 0 {
		return expandOutcome{buildType: buildType, variants: names, reason: blockedReason(blocking)}
	}

	rep := variants[names[0]]
	for _, name := range names[1:] {
		if !c.checker.Equivalent(rep, variants[name]) {
			return expandOutcome{buildType: buildType, variants: names, reason: ReasonVariantsDiffer}
		}
	}
	return compressOutcome{buildType: buildType, variants: names}
}

// expandTakenSuffixes expands every merged or single build type whose
// "-<buildType>" suffix is already the suffix of an expanded variant, so no
// two targets share a suffix. Expanding one group exposes its variant names,
// which can clash with yet another build type, hence the loop.
func expandTakenSuffixes(buildTypes []string, groups map[string][]string, outcomes map[string]outcome) {
	for changed := true; changed; {
		changed = false
		taken := make(map[string]string)
		for _, bt := range buildTypes {
			if o, ok := outcomes[bt].(expandOutcome); ok {
				for _, v := range o.variants {
					taken[VariantSuffix(v)] = v
				}
			}
		}
		for _, bt := range buildTypes {
			if _, ok := outcomes[bt].(expandOutcome); ok {
				continue
			}
			if v, ok := taken[BuildTypeSuffix(bt)]; ok {
				outcomes[bt] = expandOutcome{buildType: bt, variants: groups[bt], reason: suffixTakenReason(v)}
				changed = true
			}
		}
	}
}

// blockingDeps returns, sorted, the project dependencies of names that kept
// buildType expanded themselves.
func blockingDeps(
	buildType string,
	names []string,
	variants map[string]*descriptor.LibraryDescriptor,
	deps map[string]*Result,
) []string {
	blocking := make(map[string]struct{})
	for _, name := range names {
		for _, path := range variants[name].ProjectDeps() {
			if res, ok := deps[path]; ok && res.IsExpanded(buildType) {
				blocking[path] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(blocking))
}

// compressAcrossBuildTypes is phase two. It returns the merged result and
// true when every precondition holds, and nil and false otherwise.
func (c *Compressor) compressAcrossBuildTypes(phase1 *Result, deps map[string]*Result) (*Result, bool) {
	if len(phase1.ExpandedBuildTypes) > 0 || len(phase1.Targets) <= 1 {
		return nil, false
	}

	suffixes := phase1.Suffixes()
	rep := phase1.Targets[suffixes[0]]
	for _, s := range suffixes[1:] {
		if !c.checker.Equivalent(rep, phase1.Targets[s]) {
			return nil, false
		}
	}

	for _, s := range suffixes {
		for _, path := range phase1.Targets[s].ProjectDeps() {
			if res, ok := deps[path]; ok && !res.FullyCompressed() {
				return nil, false
			}
		}
	}

	merged := newResult()
	merged.Targets[FullSuffix] = renamed(rep, descriptor.StripSuffix(rep.Name, suffixes[0]))
	for v := range phase1.VariantSuffix {
		merged.VariantSuffix[v] = FullSuffix
	}
	return merged, true
}

func trimmedSuffixes(r *Result) []string {
	suffixes := r.Suffixes()
	out := make([]string, len(suffixes))
	for i, s := range suffixes {
		out[i] = TrimSeparator(s)
	}
	return out
}
