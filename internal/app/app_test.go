package app

import (
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/varzip/internal/hclconfig"
	"github.com/vk/varzip/internal/projectgraph"
	"github.com/vk/varzip/internal/testutil"
)

const libHCL = `
project ":lib" {
  build_types = ["debug", "release"]

  variant "debug" {
    srcs = ["src/main/java"]
  }
  variant "release" {
    srcs = ["src/main/java"]
  }
}
`

const appHCL = `
project ":app" {
  build_types = ["debug", "release"]

  variant "freeDebug" {
    srcs = ["src/main/java", "src/free/java"]
    deps = [project(":lib")]
  }
  variant "paidDebug" {
    srcs = ["src/main/java", "src/paid/java"]
    deps = [project(":lib")]
  }
  variant "freeRelease" {
    srcs = ["src/main/java"]
    deps = [project(":lib")]
  }
  variant "paidRelease" {
    srcs = ["src/main/java"]
    deps = [project(":lib")]
  }
}
`

func newTestApp(t *testing.T, files map[string]string, mutate func(*Config)) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	t.Helper()

	dir := testutil.WriteFiles(t, files)
	cfg := Config{
		Paths:                []string{dir},
		LogLevel:             "debug",
		LogFormat:            "text",
		WorkerCount:          4,
		ReportFormat:         "text",
		EquivalenceCacheSize: 128,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	return NewApp(out, logs, validated, hclconfig.NewLoader()), out, logs
}

func TestApp_Run(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	a, out, logs := newTestApp(t, map[string]string{
		"lib/build.hcl": libHCL,
		"app/build.hcl": appHCL,
	}, nil)

	require.NoError(t, a.Run(context.Background()))
	testutil.LogTestOutput(t, logs)

	require.NotNil(t, a.Plan())
	assert.Equal(t, []string{"app-freeDebug", "app-paidDebug", "app-release", "lib"}, a.Plan().Targets())

	report := out.String()
	assert.Contains(t, report, `debug: expanded [freeDebug, paidDebug]: variants differ in configuration`)
	assert.Contains(t, report, `release: compressed [freeRelease, paidRelease] into "-release"`)
	assert.Contains(t, report, "app-release [freeRelease, paidRelease] -> lib")
	assert.Contains(t, report, "2 projects, 6 variants -> 4 targets")

	testutil.AssertLogged(t, logs.String(), "Compression finished.", "targets=4")
	assert.NotContains(t, report, "level=", "logs stay out of the report")
}

func TestApp_Run_YAMLWithoutCache(t *testing.T) {
	a, out, _ := newTestApp(t, map[string]string{"lib.hcl": libHCL}, func(c *Config) {
		c.ReportFormat = "yaml"
		c.EquivalenceCacheSize = 0
	})

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "fully_compressed: true")
}

func TestApp_Run_LoadError(t *testing.T) {
	a, _, _ := newTestApp(t, map[string]string{"bad.hcl": `project ":x" {`}, nil)

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to load configuration")
	assert.Nil(t, a.Plan())
}

func TestApp_Run_Cycle(t *testing.T) {
	a, _, _ := newTestApp(t, map[string]string{
		"a.hcl": "project \":a\" {\n  variant \"debug\" {\n    deps = [\":b\"]\n  }\n}\n",
		"b.hcl": "project \":b\" {\n  variant \"debug\" {\n    deps = [\":a\"]\n  }\n}\n",
	}, nil)

	err := a.Run(context.Background())
	assert.ErrorIs(t, err, projectgraph.ErrCycle)
}

func TestNewConfig(t *testing.T) {
	valid := Config{Paths: []string{"."}, WorkerCount: 1}

	cfg, err := NewConfig(valid)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.ReportFormat)

	testCases := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"no paths", func(c *Config) { c.Paths = nil }, "project path is required"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "invalid log-format"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "invalid log-level"},
		{"bad report format", func(c *Config) { c.ReportFormat = "json" }, "invalid report format"},
		{"no workers", func(c *Config) { c.WorkerCount = 0 }, "invalid workers"},
		{"negative cache", func(c *Config) { c.EquivalenceCacheSize = -1 }, "invalid equivalence-cache"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			_, err := NewConfig(c)
			assert.ErrorContains(t, err, tc.errMsg)
		})
	}
}

func TestNewConfig_NormalisesCase(t *testing.T) {
	cfg, err := NewConfig(Config{Paths: []string{"."}, WorkerCount: 2, LogLevel: "DEBUG", LogFormat: "JSON", ReportFormat: "Yaml"})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "yaml", cfg.ReportFormat)
}
