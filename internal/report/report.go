// Package report renders a compression plan for people (text) or for other
// tools (yaml).
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/vk/varzip/internal/plan"
)

// Format selects the report renderer.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatYAML}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid report format %q: must be one of text, yaml", s)
}

// Write renders p in format. Text output is coloured unless color.NoColor
// is set, which fatih/color does when stdout is not a terminal.
func Write(w io.Writer, p *plan.Plan, format Format) error {
	switch format {
	case FormatText:
		return WriteText(w, p, !color.NoColor)
	case FormatYAML:
		return WriteYAML(w, p)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}
