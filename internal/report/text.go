package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/vk/varzip/internal/compress"
	"github.com/vk/varzip/internal/plan"
)

type palette struct {
	header, green, yellow, blue, dim func(a ...any) string
}

func newPalette(colored bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		header: mk(color.Bold),
		green:  mk(color.FgGreen),
		yellow: mk(color.FgYellow),
		blue:   mk(color.FgBlue),
		dim:    mk(color.Faint),
	}
}

// WriteText renders one block per project: its decisions, then its targets
// with the variants they build and the dependency targets they reference.
func WriteText(w io.Writer, p *plan.Plan, colored bool) error {
	pal := newPalette(colored)
	tw := &errWriter{w: w}

	for _, pp := range p.Projects() {
		variants := 0
		if pp.Result != nil {
			variants = len(pp.Result.VariantSuffix)
		}
		tw.printf("%s %s\n", pal.header(pp.Path), pal.dim(fmt.Sprintf("(%d variants -> %d targets)", variants, len(pp.Targets))))

		if len(pp.Undefined) > 0 {
			tw.printf("  %s\n", pal.yellow("undefined dependencies: "+strings.Join(pp.Undefined, ", ")))
		}
		for _, d := range pp.Decisions {
			tw.printf("  %s\n", decisionLine(pal, d))
		}
		for _, t := range pp.Targets {
			tw.printf("  %s %s", pal.blue(t.Name), pal.dim("["+strings.Join(t.Variants, ", ")+"]"))
			if len(t.Deps) > 0 {
				tw.printf(" -> %s", strings.Join(depLabels(pal, t.Deps), ", "))
			}
			tw.printf("\n")
		}
	}

	s := p.Stats()
	tw.printf("\n%d projects, %d variants -> %d targets (%d fully compressed, %d expanded build types)\n",
		s.Projects, s.Variants, s.Targets, s.FullyCompressed, s.Expanded)
	return tw.err
}

func decisionLine(pal palette, d compress.Decision) string {
	switch d.(type) {
	case compress.Compressed, compress.FullyCompressed:
		return pal.green(d.String())
	case compress.Expanded:
		return pal.yellow(d.String())
	default:
		return pal.dim(d.String())
	}
}

func depLabels(pal palette, deps []plan.ResolvedDep) []string {
	out := make([]string, len(deps))
	for i, d := range deps {
		if d.Resolved() {
			out[i] = d.Target
		} else {
			out[i] = pal.yellow(d.Path + " (unresolved)")
		}
	}
	return out
}

// errWriter keeps the first write error so rendering code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
