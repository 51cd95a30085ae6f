package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vk/varzip/internal/compress"
	"github.com/vk/varzip/internal/descriptor"
	"github.com/vk/varzip/internal/plan"
)

func buildTypeOf(variant string) string {
	if strings.HasSuffix(variant, "Debug") {
		return "debug"
	}
	return strings.ToLower(variant)
}

func descriptorOf(name string, deps ...string) *descriptor.LibraryDescriptor {
	d := &descriptor.LibraryDescriptor{Name: name, Srcs: []string{"src"}}
	for _, dep := range deps {
		d.Deps = append(d.Deps, descriptor.Project(dep))
	}
	return d
}

func projectPlan(path, base string, variants map[string]*descriptor.LibraryDescriptor, deps map[string]*compress.Result) *plan.ProjectPlan {
	result, decisions := compress.Compress(variants, buildTypeOf, deps)
	bts := make(map[string]string)
	for v := range variants {
		bts[v] = buildTypeOf(v)
	}
	return &plan.ProjectPlan{Path: path, BaseName: base, Result: result, Decisions: decisions, BuildTypes: bts}
}

func testPlan() *plan.Plan {
	lib := projectPlan(":lib", "lib", map[string]*descriptor.LibraryDescriptor{
		"debug":   descriptorOf("lib-debug"),
		"release": descriptorOf("lib-release"),
	}, nil)
	app := projectPlan(":app", "app", map[string]*descriptor.LibraryDescriptor{
		"freeDebug": descriptorOf("app-freeDebug", ":lib"),
		"paidDebug": descriptorOf("app-paidDebug", ":lib"),
		"release":   descriptorOf("app-release", ":lib", ":missing"),
	}, map[string]*compress.Result{":lib": lib.Result})
	app.Undefined = []string{":missing"}
	return plan.New(lib, app)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, testPlan(), false))

	want := `:app (3 variants -> 2 targets)
  undefined dependencies: :missing
  debug: compressed [freeDebug, paidDebug] into "-debug"
  release: single variant release as "-release"
  app-debug [freeDebug, paidDebug] -> lib
  app-release [release] -> lib, :missing (unresolved)
:lib (2 variants -> 1 targets)
  debug: single variant debug as "-debug"
  release: single variant release as "-release"
  fully compressed build types [debug, release] (2 variants)
  lib [debug, release]

2 projects, 5 variants -> 3 targets (1 fully compressed, 0 expanded build types)
`
	assert.Equal(t, want, buf.String())
}

func TestWriteText_Colored(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, testPlan(), true))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, testPlan()))

	var got yamlReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	require.Len(t, got.Projects, 2)
	app := got.Projects[0]
	assert.Equal(t, ":app", app.Path)
	assert.False(t, app.FullyCompressed)
	assert.Equal(t, []string{":missing"}, app.Undefined)
	assert.Equal(t, map[string]string{
		"freeDebug": "app-debug",
		"paidDebug": "app-debug",
		"release":   "app-release",
	}, app.Variants)
	require.Len(t, app.Targets, 2)
	assert.Equal(t, []yamlDep{{Project: ":lib", Target: "lib"}, {Project: ":missing"}}, app.Targets[1].Deps)

	lib := got.Projects[1]
	assert.True(t, lib.FullyCompressed)
	assert.Empty(t, lib.Undefined)
	assert.Len(t, lib.Decisions, 3)

	assert.Equal(t, yamlSummary{Projects: 2, Variants: 5, Targets: 3, FullyCompressed: 1}, got.Summary)
	assert.True(t, strings.HasPrefix(buf.String(), "projects:\n"))
}

func TestWriteYAML_EmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, plan.New()))
	assert.Contains(t, buf.String(), "projects: []")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.ErrorContains(t, err, "invalid report format")
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, plan.New(), Format("xml"))
	assert.Error(t, err)
}

type brokenWriter struct{}

var errBroken = errors.New("broken pipe")

func (brokenWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestWriteText_PropagatesWriteError(t *testing.T) {
	err := WriteText(brokenWriter{}, testPlan(), false)
	assert.ErrorIs(t, err, errBroken)
}
