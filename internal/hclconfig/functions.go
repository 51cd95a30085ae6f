package hclconfig

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/varzip/internal/config"
	"github.com/vk/varzip/internal/descriptor"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// dependencyType is the object type returned by project() and artifact().
var dependencyType = cty.Object(map[string]cty.Type{
	"kind": cty.String,
	"ref":  cty.String,
})

// dependencyValue is the Go shape of dependencyType.
type dependencyValue struct {
	Kind string `cty:"kind"`
	Ref  string `cty:"ref"`
}

// ProjectFunc builds a project dependency: project(":lib").
var ProjectFunc = dependencyFunc(descriptor.ProjectDependency, "path", func(ref string) error {
	if !strings.HasPrefix(ref, config.PathSeparator) {
		return fmt.Errorf("project path %q must start with %q", ref, config.PathSeparator)
	}
	return nil
})

// ArtifactFunc builds an external dependency: artifact("group:name:version").
var ArtifactFunc = dependencyFunc(descriptor.ExternalDependency, "coordinate", func(ref string) error {
	if ref == "" {
		return fmt.Errorf("artifact coordinate must not be empty")
	}
	return nil
})

func dependencyFunc(kind descriptor.DependencyKind, param string, validate func(string) error) function.Function {
	return function.New(&function.Spec{
		Description: fmt.Sprintf("Declares a %s dependency.", kind),
		Params: []function.Parameter{
			{Name: param, Type: cty.String},
		},
		Type: function.StaticReturnType(dependencyType),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			ref := args[0].AsString()
			if err := validate(ref); err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			return gocty.ToCtyValue(dependencyValue{Kind: kind.String(), Ref: ref}, dependencyType)
		},
	})
}

// evalContext is the context every project file is evaluated in.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"project":  ProjectFunc,
			"artifact": ArtifactFunc,
			"concat":   stdlib.ConcatFunc,
			"distinct": stdlib.DistinctFunc,
			"format":   stdlib.FormatFunc,
			"lower":    stdlib.LowerFunc,
			"upper":    stdlib.UpperFunc,
		},
	}
}

// decodeDeps evaluates a `deps` expression into dependencies. Strings that
// start with ':' are project dependencies; other strings are external ones.
func decodeDeps(expr hcl.Expression, evalCtx *hcl.EvalContext) ([]descriptor.Dependency, hcl.Diagnostics) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	invalid := func(detail string) hcl.Diagnostics {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid dependency list",
			Detail:   detail,
			Subject:  expr.Range().Ptr(),
		}}
	}

	if !val.IsWhollyKnown() {
		return nil, invalid("The dependency list must be known when the file is loaded.")
	}
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return nil, invalid(fmt.Sprintf("Expected a list of dependencies, got %s.", ty.FriendlyName()))
	}

	var deps []descriptor.Dependency
	for it := val.ElementIterator(); it.Next(); {
		idx, elem := it.Element()
		dep, err := toDependency(elem)
		if err != nil {
			return nil, invalid(fmt.Sprintf("Element %s: %s.", idx.GoString(), err))
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

func toDependency(v cty.Value) (descriptor.Dependency, error) {
	if v.IsNull() {
		return descriptor.Dependency{}, fmt.Errorf("dependency must not be null")
	}

	if v.Type() == cty.String {
		ref := v.AsString()
		if strings.HasPrefix(ref, config.PathSeparator) {
			return descriptor.Project(ref), nil
		}
		return descriptor.External(ref), nil
	}

	if !v.Type().IsObjectType() {
		return descriptor.Dependency{}, fmt.Errorf("expected a string or a project()/artifact() value, got %s", v.Type().FriendlyName())
	}
	conv, err := convert.Convert(v, dependencyType)
	if err != nil {
		return descriptor.Dependency{}, fmt.Errorf("not a dependency object: %w", err)
	}
	var dv dependencyValue
	if err := gocty.FromCtyValue(conv, &dv); err != nil {
		return descriptor.Dependency{}, err
	}
	switch dv.Kind {
	case descriptor.ProjectDependency.String():
		return descriptor.Project(dv.Ref), nil
	case descriptor.ExternalDependency.String():
		return descriptor.External(dv.Ref), nil
	default:
		return descriptor.Dependency{}, fmt.Errorf("unknown dependency kind %q", dv.Kind)
	}
}
