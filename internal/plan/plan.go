// Package plan assembles per-project compression results into the targets a
// build generator emits, and resolves which dependency target each of them
// must reference.
package plan

import (
	"maps"
	"slices"

	"github.com/vk/varzip/internal/compress"
	"github.com/vk/varzip/internal/descriptor"
)

// ProjectPlan is the compression outcome of one project.
type ProjectPlan struct {
	Path     string
	BaseName string
	Result   *compress.Result
	// Decisions explain Result, in the order they were taken.
	Decisions []compress.Decision
	// BuildTypes maps each variant to its build type.
	BuildTypes map[string]string
	// Undefined lists referenced projects that no file defines, sorted.
	Undefined []string
	// Targets is filled in by New, sorted by suffix.
	Targets []*Target
}

// Target is one emitted build target.
type Target struct {
	Name       string
	Suffix     string
	Descriptor *descriptor.LibraryDescriptor
	// Variants lists, sorted, the variants this target builds.
	Variants []string
	// Deps resolves each project dependency of the descriptor.
	Deps []ResolvedDep
}

// ResolvedDep is a project dependency and the target that satisfies it.
type ResolvedDep struct {
	Path string
	// Target is empty when the dependency could not be resolved.
	Target string
}

// Resolved reports whether a target was found for the dependency.
func (d ResolvedDep) Resolved() bool {
	return d.Target != ""
}

// Plan is the deterministic outcome of a whole run.
type Plan struct {
	projects map[string]*ProjectPlan
}

// New builds a plan and resolves the targets of every project.
func New(projects ...*ProjectPlan) *Plan {
	p := &Plan{projects: make(map[string]*ProjectPlan, len(projects))}
	for _, pp := range projects {
		p.projects[pp.Path] = pp
	}
	for _, pp := range p.projects {
		pp.Targets = p.targetsOf(pp)
	}
	return p
}

func (p *Plan) targetsOf(pp *ProjectPlan) []*Target {
	if pp.Result == nil {
		return nil
	}

	variantsBySuffix := make(map[string][]string)
	for _, v := range pp.Result.Variants() {
		s := pp.Result.VariantSuffix[v]
		variantsBySuffix[s] = append(variantsBySuffix[s], v)
	}

	var targets []*Target
	for _, suffix := range pp.Result.Suffixes() {
		t := &Target{
			Name:       pp.BaseName + suffix,
			Suffix:     suffix,
			Descriptor: pp.Result.Targets[suffix],
			Variants:   variantsBySuffix[suffix],
		}
		if len(t.Variants) > 0 {
			rep := t.Variants[0]
			for _, dep := range t.Descriptor.ProjectDeps() {
				resolved := ResolvedDep{Path: dep}
				if s, ok := p.DependencyTarget(pp.Path, rep, dep); ok {
					resolved.Target = p.projects[dep].BaseName + s
				}
				t.Deps = append(t.Deps, resolved)
			}
		}
		targets = append(targets, t)
	}
	return targets
}

// Projects returns every project plan sorted by path.
func (p *Plan) Projects() []*ProjectPlan {
	out := make([]*ProjectPlan, 0, len(p.projects))
	for _, path := range slices.Sorted(maps.Keys(p.projects)) {
		out = append(out, p.projects[path])
	}
	return out
}

// Project returns the plan of path.
func (p *Plan) Project(path string) (*ProjectPlan, bool) {
	pp, ok := p.projects[path]
	return pp, ok
}

// DependencyTarget returns the suffix of the target of depPath that variant
// of dependent must reference. The dependency's own target for that variant
// wins; then its target for the variant's build type; then its unsuffixed
// target when it is fully compressed.
func (p *Plan) DependencyTarget(dependent, variant, depPath string) (string, bool) {
	dep, ok := p.projects[depPath]
	if !ok || dep.Result == nil {
		return "", false
	}

	if s, ok := dep.Result.VariantSuffix[variant]; ok {
		return s, true
	}

	if pp, ok := p.projects[dependent]; ok {
		if bt, ok := pp.BuildTypes[variant]; ok {
			s := compress.BuildTypeSuffix(bt)
			if _, ok := dep.Result.Targets[s]; ok {
				return s, true
			}
		}
	}

	if dep.Result.FullyCompressed() {
		return compress.FullSuffix, true
	}
	return "", false
}

// Targets returns the name of every emitted target, grouped by project path
// and sorted by suffix within a project.
func (p *Plan) Targets() []string {
	var names []string
	for _, pp := range p.Projects() {
		for _, t := range pp.Targets {
			names = append(names, t.Name)
		}
	}
	return names
}

// Stats summarises a plan.
type Stats struct {
	Projects        int
	Variants        int
	Targets         int
	FullyCompressed int
	// Expanded counts expanded build types over all projects.
	Expanded int
}

// Stats counts what the plan contains.
func (p *Plan) Stats() Stats {
	var s Stats
	for _, pp := range p.projects {
		s.Projects++
		s.Targets += len(pp.Targets)
		if pp.Result == nil {
			continue
		}
		s.Variants += len(pp.Result.VariantSuffix)
		s.Expanded += len(pp.Result.ExpandedBuildTypes)
		if pp.Result.FullyCompressed() {
			s.FullyCompressed++
		}
	}
	return s
}
