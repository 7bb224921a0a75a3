// Package cli wires a console application into a cobra root command with
// configuration, logging, signal handling and exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"slade/internal/application"
	"slade/internal/cmderr"
	"slade/internal/config"
	"slade/internal/logger"
	"slade/internal/output"
	"slade/internal/version"
)

// Setup builds the application context and options for one run.
type Setup func(ctx context.Context, settings *config.Settings) (application.Context, []application.Option, error)

// Spec describes a console application binary.
type Spec struct {
	Name  string
	Short string
	Long  string
	Setup Setup

	// ConfigOptions adjust where configuration is loaded from.
	ConfigOptions []config.Option
}

// reportedError marks an error the user has already been shown.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// NewRootCommand creates the root command. Raw arguments are handed to the
// application parser untouched.
func NewRootCommand(spec Spec) *cobra.Command {
	root := &cobra.Command{
		Use:                spec.Name + " [/command=value ...]",
		Short:              spec.Short,
		Long:               spec.Long,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), spec, args)
		},
	}

	var detailed bool
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  fmt.Sprintf("Display the version of %s.", spec.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !detailed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.GetFormattedVersion(spec.Name))
				return nil
			}
			info, err := version.GetDetailedVersion(spec.Name)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), info)
			return nil
		},
	}
	versionCmd.Flags().BoolVar(&detailed, "detailed", false, "Show detailed build information as YAML")
	root.AddCommand(versionCmd)

	return root
}

func run(ctx context.Context, spec Spec, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if args == nil {
		args = []string{}
	}

	settings, err := config.Load(spec.Name, spec.ConfigOptions...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Configure(settings.LogLevel, settings.LogFile); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	outputMode, err := output.ParseMode(settings.Output)
	if err != nil {
		return err
	}
	printer := output.ConfigureGlobal(output.WithMode(outputMode))
	logger.Debug("Console output", "mode", printer.Mode(), "styled", printer.IsStylable())

	mode, err := application.ParseErrorMode(settings.ErrorMode)
	if err != nil {
		return err
	}

	appContext, options, err := spec.Setup(ctx, settings)
	if err != nil {
		return err
	}
	options = append(options, application.WithErrorMode(mode))

	logger.Info("Starting application", "name", spec.Name, "version", version.GetVersion(), "args", len(args))
	app, err := application.New(spec.Name, appContext, args, options...)
	if err != nil {
		return err
	}
	if err := app.Run(ctx); err != nil {
		return reportedError{err: err}
	}
	return nil
}

// Execute runs root until it finishes or the process is interrupted and
// returns the process exit code.
func Execute(root *cobra.Command, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		logger.Error("Application failed", "name", root.Name(), "exit", cmderr.ExitCode(err), "error", err)
		var reported reportedError
		if !errors.As(err, &reported) {
			output.Fail(err.Error())
		}
	}
	return cmderr.ExitCode(err)
}
