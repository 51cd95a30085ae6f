package compress

import "strings"

// Separator starts every non-empty target suffix.
const Separator = "-"

// FullSuffix is the suffix of the single target left after a project has been
// compressed across build types.
const FullSuffix = ""

// BuildTypeSuffix is the suffix of a target that covers a whole build type.
func BuildTypeSuffix(buildType string) string {
	return Separator + buildType
}

// VariantSuffix is the suffix of a target that covers exactly one variant.
func VariantSuffix(variant string) string {
	return Separator + variant
}

// TrimSeparator removes the leading separator from a suffix.
func TrimSeparator(suffix string) string {
	return strings.TrimPrefix(suffix, Separator)
}
