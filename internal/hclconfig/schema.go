package hclconfig

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Projects []*Project `hcl:"project,block"`
	Remain   hcl.Body   `hcl:",remain"`
}

// Project is the HCL schema of a `project` block.
type Project struct {
	Path        string     `hcl:"path,label"`
	BuildTypes  []string   `hcl:"build_types,optional"`
	PackageName string     `hcl:"package_name,optional"`
	Variants    []*Variant `hcl:"variant,block"`
}

// Variant is the HCL schema of a `variant` block.
type Variant struct {
	Name        string            `hcl:"name,label"`
	BuildType   string            `hcl:"build_type,optional"`
	PackageName string            `hcl:"package_name,optional"`
	Srcs        []string          `hcl:"srcs,optional"`
	Resources   []string          `hcl:"resources,optional"`
	Assets      []string          `hcl:"assets,optional"`
	Manifest    string            `hcl:"manifest,optional"`
	BuildConfig map[string]string `hcl:"build_config,optional"`
	ResValues   map[string]string `hcl:"res_values,optional"`
	// Deps is kept as an expression so project() and artifact() results can
	// be told apart from plain strings.
	Deps hcl.Expression `hcl:"deps,optional"`
}
