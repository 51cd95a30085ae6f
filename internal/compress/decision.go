package compress

import (
	"fmt"
	"strings"
)

// Decision records why a build type, or the project as a whole, ended up with
// the targets it has. Decisions are diagnostics only: nothing downstream of
// the compressor changes behaviour based on them.
//
// The set of implementations is closed: Compressed, Expanded, SingleVariant
// and FullyCompressed.
type Decision interface {
	fmt.Stringer
	isDecision()
}

// Compressed means every variant of BuildType shares one target.
type Compressed struct {
	BuildType string
	Variants  []string
	Suffix    string
}

// Expanded means the variants of BuildType keep one target each.
type Expanded struct {
	BuildType string
	Variants  []string
	Reason    string
}

// SingleVariant means BuildType had only one variant to begin with.
type SingleVariant struct {
	BuildType string
	Variant   string
	Suffix    string
}

// FullyCompressed means every build type collapsed into the unsuffixed target.
type FullyCompressed struct {
	BuildTypes []string
	Variants   []string
}

func (Compressed) isDecision()      {}
func (Expanded) isDecision()        {}
func (SingleVariant) isDecision()   {}
func (FullyCompressed) isDecision() {}

func (d Compressed) String() string {
	return fmt.Sprintf("%s: compressed [%s] into %q", d.BuildType, strings.Join(d.Variants, ", "), d.Suffix)
}

func (d Expanded) String() string {
	return fmt.Sprintf("%s: expanded [%s]: %s", d.BuildType, strings.Join(d.Variants, ", "), d.Reason)
}

func (d SingleVariant) String() string {
	return fmt.Sprintf("%s: single variant %s as %q", d.BuildType, d.Variant, d.Suffix)
}

func (d FullyCompressed) String() string {
	return fmt.Sprintf("fully compressed build types [%s] (%d variants)", strings.Join(d.BuildTypes, ", "), len(d.Variants))
}

// Reasons attached to Expanded decisions.
const (
	reasonBlockedPrefix     = "blocked by dependencies: "
	reasonSuffixTakenPrefix = "suffix taken by expanded variant "
	ReasonVariantsDiffer    = "variants differ in configuration"
)

func blockedReason(paths []string) string {
	return reasonBlockedPrefix + strings.Join(paths, ", ")
}

func suffixTakenReason(variant string) string {
	return reasonSuffixTakenPrefix + variant
}
