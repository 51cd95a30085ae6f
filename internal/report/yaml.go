package report

import (
	"fmt"
	"io"

	"github.com/vk/varzip/internal/plan"
	"gopkg.in/yaml.v3"
)

type yamlReport struct {
	Projects []yamlProject `yaml:"projects"`
	Summary  yamlSummary   `yaml:"summary"`
}

type yamlProject struct {
	Path            string       `yaml:"path"`
	FullyCompressed bool         `yaml:"fully_compressed"`
	Expanded        []string     `yaml:"expanded_build_types,omitempty"`
	Undefined       []string     `yaml:"undefined_dependencies,omitempty"`
	Decisions       []string     `yaml:"decisions"`
	Targets         []yamlTarget `yaml:"targets"`
	// Variants maps each variant to the name of the target building it.
	Variants map[string]string `yaml:"variants"`
}

type yamlTarget struct {
	Name     string    `yaml:"name"`
	Variants []string  `yaml:"variants"`
	Deps     []yamlDep `yaml:"deps,omitempty"`
}

type yamlDep struct {
	Project string `yaml:"project"`
	Target  string `yaml:"target,omitempty"`
}

type yamlSummary struct {
	Projects        int `yaml:"projects"`
	Variants        int `yaml:"variants"`
	Targets         int `yaml:"targets"`
	FullyCompressed int `yaml:"fully_compressed"`
	Expanded        int `yaml:"expanded_build_types"`
}

// WriteYAML renders p as a single YAML document.
func WriteYAML(w io.Writer, p *plan.Plan) error {
	doc := yamlReport{Projects: []yamlProject{}}
	for _, pp := range p.Projects() {
		yp := yamlProject{
			Path:      pp.Path,
			Undefined: pp.Undefined,
			Decisions: make([]string, 0, len(pp.Decisions)),
			Targets:   make([]yamlTarget, 0, len(pp.Targets)),
			Variants:  make(map[string]string),
		}
		if pp.Result != nil {
			yp.FullyCompressed = pp.Result.FullyCompressed()
			yp.Expanded = pp.Result.Expanded()
			for v, s := range pp.Result.VariantSuffix {
				yp.Variants[v] = pp.BaseName + s
			}
		}
		for _, d := range pp.Decisions {
			yp.Decisions = append(yp.Decisions, d.String())
		}
		for _, t := range pp.Targets {
			yt := yamlTarget{Name: t.Name, Variants: t.Variants}
			for _, d := range t.Deps {
				yt.Deps = append(yt.Deps, yamlDep{Project: d.Path, Target: d.Target})
			}
			yp.Targets = append(yp.Targets, yt)
		}
		doc.Projects = append(doc.Projects, yp)
	}

	s := p.Stats()
	doc.Summary = yamlSummary{
		Projects:        s.Projects,
		Variants:        s.Variants,
		Targets:         s.Targets,
		FullyCompressed: s.FullyCompressed,
		Expanded:        s.Expanded,
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	return enc.Close()
}
