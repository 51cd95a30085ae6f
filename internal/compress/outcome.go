package compress

import "github.com/vk/varzip/internal/descriptor"

// outcome is the phase-one verdict for one build type. Like Decision it is a
// closed set: compressOutcome, expandOutcome and singleOutcome.
type outcome interface {
	isOutcome()
}

type compressOutcome struct {
	buildType string
	// variants is sorted; variants[0] is the representative.
	variants []string
}

type expandOutcome struct {
	buildType string
	variants  []string
	reason    string
}

type singleOutcome struct {
	buildType string
	variant   string
}

func (compressOutcome) isOutcome() {}
func (expandOutcome) isOutcome()   {}
func (singleOutcome) isOutcome()   {}

// apply turns an outcome into targets, variant assignments and a decision,
// recording expanded build types on acc.
func apply(o outcome, variants map[string]*descriptor.LibraryDescriptor, acc *Result) Decision {
	switch o := o.(type) {
	case singleOutcome:
		suffix := BuildTypeSuffix(o.buildType)
		d := variants[o.variant]
		acc.Targets[suffix] = renamed(d, descriptor.StripSuffix(d.Name, VariantSuffix(o.variant))+suffix)
		acc.VariantSuffix[o.variant] = suffix
		return SingleVariant{BuildType: o.buildType, Variant: o.variant, Suffix: suffix}

	case expandOutcome:
		for _, v := range o.variants {
			suffix := VariantSuffix(v)
			acc.Targets[suffix] = variants[v]
			acc.VariantSuffix[v] = suffix
		}
		acc.ExpandedBuildTypes[o.buildType] = struct{}{}
		return Expanded{BuildType: o.buildType, Variants: o.variants, Reason: o.reason}

	case compressOutcome:
		suffix := BuildTypeSuffix(o.buildType)
		rep := o.variants[0]
		d := variants[rep]
		acc.Targets[suffix] = renamed(d, descriptor.StripSuffix(d.Name, VariantSuffix(rep))+suffix)
		for _, v := range o.variants {
			acc.VariantSuffix[v] = suffix
		}
		return Compressed{BuildType: o.buildType, Variants: o.variants, Suffix: suffix}

	default:
		panic("compress: unhandled outcome type")
	}
}

// renamed returns d itself when it already carries name, and a renamed copy
// otherwise.
func renamed(d *descriptor.LibraryDescriptor, name string) *descriptor.LibraryDescriptor {
	if d.Name == name {
		return d
	}
	return d.WithName(name)
}
