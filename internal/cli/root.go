package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/kbukum/querykit/config"
	"github.com/kbukum/querykit/logger"
	"github.com/kbukum/querykit/observability"
	"github.com/kbukum/querykit/version"
)

// RootOptions holds global flags and the state prepared before a command runs.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	cfg      *config.Config
	shutdown []func(context.Context) error
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the qk CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

// Execute runs the CLI with args and returns the process exit code. Errors a
// command has not already rendered are written to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if serr := opts.Shutdown(context.WithoutCancel(ctx)); serr != nil {
		fmt.Fprintf(stderr, "Warning: flushing telemetry: %v\n", serr)
	}
	if err == nil {
		return ExitSuccess
	}
	if !IsReported(err) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	var exitErr *ExitError
	if !stderrors.As(err, &exitErr) {
		// Argument and flag errors from cobra itself.
		return ExitCommandError
	}
	return exitErr.Code
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qk",
		Short: "qk - query numbers and words from the command line",
		Long: `Runs deferred query pipelines over command-line input.

Place flags before the numbers and separate them with -- when the first
number is negative: qk sort --desc -- -5 3 -1`,
		Version:       version.Get().Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Shutdown(cmd.Context())
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "config file (default: ./qk.yml, then the user config dir)")

	cmd.AddCommand(NewRangeCommand(opts))
	cmd.AddCommand(NewSortCommand(opts))
	cmd.AddCommand(NewChunkCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewGroupCommand(opts))
	cmd.AddCommand(NewCompleteCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// setup loads configuration, installs the logger and starts any configured
// telemetry exporters.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	var loadOpts []config.LoaderOption
	if o.ConfigFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(o.ConfigFile))
	}
	cfg, err := config.Load("qk", loadOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading config", err)
	}
	if o.Verbose {
		cfg.Logging.Level = "debug"
	}
	cfg.Logging.Writer = cmd.ErrOrStderr()
	logger.Init(cfg.Logging)
	o.cfg = cfg

	ctx := cmd.Context()
	if cfg.Telemetry.MetricsEnabled() {
		mp, err := observability.InitMeter(ctx, cfg.Telemetry)
		if err != nil {
			return WrapExitError(ExitFailure, "starting metrics", err)
		}
		o.shutdown = append(o.shutdown, mp.Shutdown)
	}
	if cfg.Telemetry.TracingEnabled() {
		tp, err := observability.InitTracer(ctx, cfg.Telemetry)
		if err != nil {
			return WrapExitError(ExitFailure, "starting tracing", err)
		}
		o.shutdown = append(o.shutdown, tp.Shutdown)
	}
	return nil
}

// Shutdown flushes telemetry exporters. Calling it again is a no-op.
func (o *RootOptions) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range o.shutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	o.shutdown = nil
	return stderrors.Join(errs...)
}

// config returns the loaded configuration, or the defaults when a command
// runs without the root command.
func (o *RootOptions) config() *config.Config {
	if o.cfg == nil {
		cfg := config.Default("qk")
		o.cfg = &cfg
	}
	return o.cfg
}

// metrics returns the shared instruments, or nil when they cannot be created.
func (o *RootOptions) metrics() *observability.Metrics {
	m, err := observability.Default()
	if err != nil {
		logger.Get("cli").Warn("metrics unavailable", logger.ErrorFields("metrics", err))
		return nil
	}
	return m
}
