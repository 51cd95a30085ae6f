// Package itest is the end-to-end harness shared by the integration test
// suites: it writes project files to a temporary directory, runs the full
// load, compress and report pipeline and captures everything it printed.
package itest

import (
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/vk/varzip/internal/app"
	"github.com/vk/varzip/internal/hclconfig"
	"github.com/vk/varzip/internal/testutil"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	Report    string
	LogOutput string
	Err       error
	App       *app.App
}

// Option adjusts the app configuration used by a run.
type Option func(*app.Config)

// WithReportFormat selects the report format.
func WithReportFormat(format string) Option {
	return func(c *app.Config) { c.ReportFormat = format }
}

// WithWorkers sets the worker count.
func WithWorkers(n int) Option {
	return func(c *app.Config) { c.WorkerCount = n }
}

// RunIntegrationTest runs the pipeline with a background context.
func RunIntegrationTest(t *testing.T, files map[string]string, opts ...Option) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, opts...)
}

// RunIntegrationTestWithContext runs the pipeline over files, keyed by path
// relative to a fresh temporary directory.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts ...Option) *HarnessResult {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	dir := testutil.WriteFiles(t, files)
	cfg := app.Config{
		Paths:                []string{dir},
		LogLevel:             "debug",
		LogFormat:            "text",
		WorkerCount:          4,
		ReportFormat:         "text",
		EquivalenceCacheSize: 256,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	a := app.NewApp(out, logs, validated, hclconfig.NewLoader())
	runErr := a.Run(ctx)
	testutil.LogTestOutput(t, logs)

	return &HarnessResult{
		Dir:       dir,
		Report:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		App:       a,
	}
}
