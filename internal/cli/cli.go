package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/varzip/internal/app"
)

// EnvPrefix prefixes every environment variable the CLI reads, e.g.
// VARZIP_LOG_LEVEL for --log-level.
const EnvPrefix = "VARZIP"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Flags win over VARZIP_* environment variables, which win over a --config
// file, which wins over the flag defaults.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	v := viper.New()
	var cfg *app.Config

	cmd := &cobra.Command{
		Use:   "varzip [flags] PROJECT_PATH...",
		Short: "Compress Android build variants into as few build targets as possible.",
		Long: `varzip reads project definitions (.hcl files) and decides, per project,
which build variants can share a single build target.

Arguments:
  PROJECT_PATH
    Path to a single .hcl file or a directory containing .hcl files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, paths []string) error {
			if len(paths) == 0 {
				return cmd.Usage()
			}
			if file := v.GetString("config"); file != "" {
				v.SetConfigFile(file)
				if err := v.ReadInConfig(); err != nil {
					return usageError(fmt.Errorf("failed to read config file: %w", err))
				}
			}

			c, err := app.NewConfig(app.Config{
				Paths:                paths,
				LogFormat:            v.GetString("log-format"),
				LogLevel:             v.GetString("log-level"),
				WorkerCount:          v.GetInt("workers"),
				ReportFormat:         v.GetString("format"),
				EquivalenceCacheSize: v.GetInt("equivalence-cache"),
			})
			if err != nil {
				return usageError(err)
			}
			cfg = c
			return nil
		},
	}
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.String("config", "", "Optional YAML file providing defaults for the flags below.")
	flags.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.Int("workers", 4, "Number of projects compressed concurrently.")
	flags.String("format", "text", "Report format. Options: 'text' or 'yaml'.")
	flags.Int("equivalence-cache", 4096, "Number of descriptor comparisons to memoise. 0 disables the cache.")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, false, err
	}

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, usageError(err)
	}

	// Help and the no-path usage screen both end here without a config.
	if cfg == nil {
		return nil, true, nil
	}
	return cfg, false, nil
}
