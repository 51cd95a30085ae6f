package hclconfig

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/varzip/internal/config"
	"github.com/vk/varzip/internal/descriptor"
	"github.com/vk/varzip/internal/testutil"
)

const appHCL = `
project ":app" {
  build_types  = ["debug", "release"]
  package_name = "com.example.app"

  variant "freeDebug" {
    srcs         = ["src/main/java", "src/free/java"]
    manifest     = "src/main/AndroidManifest.xml"
    build_config = { DEBUG = "true" }
    deps         = [project(":lib"), artifact("androidx.core:core:1.12.0"), ":core", "junit:junit:4.13"]
  }

  variant "paidRelease" {
    package_name = "com.example.app.paid"
    res_values   = { app_name = upper("paid") }
  }
}
`

// variantHCL wraps a single attribute in a debug variant of ":app".
func variantHCL(attr string) string {
	return "project \":app\" {\n  variant \"debug\" {\n    " + attr + "\n  }\n}\n"
}

func TestLoader_LoadSource(t *testing.T) {
	model, err := NewLoader().LoadSource(context.Background(), "app.hcl", []byte(appHCL))
	require.NoError(t, err)
	require.Contains(t, model.Projects, ":app")

	app := model.Projects[":app"]
	assert.Equal(t, []string{"debug", "release"}, app.BuildTypes)
	assert.Equal(t, "app.hcl", app.Source)
	require.Len(t, app.Variants, 2)

	free := app.Variants["freeDebug"].Descriptor
	assert.Equal(t, "app-freeDebug", free.Name)
	assert.Equal(t, "com.example.app", free.PackageName, "inherits project package name")
	assert.Equal(t, []string{"src/main/java", "src/free/java"}, free.Srcs)
	assert.Equal(t, "src/main/AndroidManifest.xml", free.Manifest)
	assert.Equal(t, map[string]string{"DEBUG": "true"}, free.BuildConfig)
	assert.Equal(t, []descriptor.Dependency{
		descriptor.Project(":lib"),
		descriptor.External("androidx.core:core:1.12.0"),
		descriptor.Project(":core"),
		descriptor.External("junit:junit:4.13"),
	}, free.Deps)

	paid := app.Variants["paidRelease"].Descriptor
	assert.Equal(t, "com.example.app.paid", paid.PackageName)
	assert.Equal(t, map[string]string{"app_name": "PAID"}, paid.ResValues)
	assert.Empty(t, paid.Deps)

	assert.Equal(t, "debug", app.BuildTypeOf("freeDebug"))
	assert.Equal(t, "release", app.BuildTypeOf("paidRelease"))
}

func TestLoader_ExplicitBuildType(t *testing.T) {
	src := `
project ":lib" {
  variant "staging" {
    build_type = "release"
  }
}
`
	model, err := NewLoader().LoadSource(context.Background(), "lib.hcl", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "release", model.Projects[":lib"].BuildTypeOf("staging"))
}

func TestLoader_Load_MergesFiles(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"app/build.hcl":  appHCL,
		"lib/build.hcl":  "project \":lib\" {\n  variant \"debug\" {}\n}\n",
		"core/build.hcl": "project \":core\" {\n  variant \"debug\" {}\n}\n",
		"README.md":      "not a project",
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{":app", ":core", ":lib"}, model.ProjectPaths())
	assert.Equal(t, filepath.Join(dir, "lib", "build.hcl"), model.Projects[":lib"].Source)
	assert.Equal(t, 4, model.VariantCount())
}

func TestLoader_Load_DuplicateProject(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.hcl": "project \":lib\" {\n  variant \"debug\" {}\n}\n",
		"b.hcl": "project \":lib\" {\n  variant \"release\" {}\n}\n",
	})

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrDuplicateProject)
	assert.ErrorContains(t, err, "a.hcl")
	assert.ErrorContains(t, err, "b.hcl")
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		errIs   error
		message string
	}{
		{
			name:    "syntax error",
			src:     `project ":app" {`,
			message: "failed to parse HCL file",
		},
		{
			name:    "unknown attribute",
			src:     `project ":app" { flavor = "x" }`,
			message: "failed to decode HCL file",
		},
		{
			name:  "invalid project path",
			src:   `project "app" {}`,
			errIs: config.ErrInvalidProjectPath,
		},
		{
			name:  "duplicate variant",
			src:   "project \":app\" {\n  variant \"debug\" {}\n  variant \"debug\" {}\n}\n",
			errIs: config.ErrDuplicateVariant,
		},
		{
			name:    "project() rejects bare names",
			src:     variantHCL(`deps = [project("lib")]`),
			message: "must start with",
		},
		{
			name:    "deps must be a list",
			src:     variantHCL(`deps = ":lib"`),
			message: "Expected a list of dependencies",
		},
		{
			name:    "deps element of wrong type",
			src:     variantHCL(`deps = [42]`),
			message: "Invalid dependency list",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().LoadSource(context.Background(), "test.hcl", []byte(tc.src))
			require.Error(t, err)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			}
			if tc.message != "" {
				assert.ErrorContains(t, err, tc.message)
			}
		})
	}
}

func TestLoader_DepsUsingStdlibFunctions(t *testing.T) {
	src := `
project ":app" {
  variant "debug" {
    deps = concat(distinct([":lib", ":lib"]), [project(":core")], [format("com.example:%s:1.0", "util")])
  }
}
`
	model, err := NewLoader().LoadSource(context.Background(), "app.hcl", []byte(src))
	require.NoError(t, err)

	deps := model.Projects[":app"].Variants["debug"].Descriptor.Deps
	assert.Equal(t, []descriptor.Dependency{
		descriptor.Project(":lib"),
		descriptor.Project(":core"),
		descriptor.External("com.example:util:1.0"),
	}, deps)
}
