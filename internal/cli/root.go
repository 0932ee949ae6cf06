package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/echoloop/internal/buildinfo"
	"github.com/aalvaropc/echoloop/internal/domain"
	"github.com/aalvaropc/echoloop/internal/infra/configfinder"
	"github.com/aalvaropc/echoloop/internal/infra/linereader"
	"github.com/aalvaropc/echoloop/internal/infra/linewriter"
	"github.com/aalvaropc/echoloop/internal/infra/logger"
	"github.com/aalvaropc/echoloop/internal/ports"
	"github.com/aalvaropc/echoloop/internal/usecase"
)

// Execute runs the CLI and exits with the code matching the outcome.
func Execute() {
	ctx, stop := signalContext()

	cmd := newRootCmd(defaultDeps())
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printError(os.Stderr, err)
	}

	stop()
	os.Exit(ExitCode(err))
}

type deps struct {
	locator ports.ConfigLocator
	getwd   func() (string, error)
}

func defaultDeps() deps {
	return deps{
		locator: configfinder.NewFinder(),
		getwd:   os.Getwd,
	}
}

func newRootCmd(d deps) *cobra.Command {
	var flags settingsFlags

	cmd := &cobra.Command{
		Use:           "echoloop",
		Short:         "Echo standard input to standard output, one line at a time",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := resolveSettings(cmd, d, flags)
			if err != nil {
				return err
			}

			cleanup, err := logger.Setup(logger.Config{
				Level:  cfg.Log.Level,
				File:   cfg.Log.File,
				Debug:  flags.debug,
				Stderr: cmd.ErrOrStderr(),
			})
			if err != nil {
				return &domain.OpError{
					Op:   "logger.setup",
					Kind: domain.KindExecution,
					Path: cfg.Log.File,
					Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
				}
			}
			defer func() { _ = cleanup() }()

			return runEcho(cmd, cfg)
		},
	}

	cmd.SetVersionTemplate(buildinfo.String() + "\n")
	flags.register(cmd)

	cmd.AddCommand(versionCmd())
	cmd.AddCommand(configCmd(d, &flags))
	return cmd
}

func runEcho(cmd *cobra.Command, cfg domain.Config) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	in := cmd.InOrStdin()

	// A blocked read on stdin does not observe ctx, so the descriptor is switched
	// to one the poller can interrupt. After that a second signal gets the default behaviour.
	if f, ok := in.(*os.File); ok {
		r, interrupt, release := interruptibleInput(f)
		defer release()
		in = r

		stopInterrupt := context.AfterFunc(ctx, func() {
			signal.Reset(os.Interrupt, syscall.SIGTERM)
			interrupt()
		})
		defer stopInterrupt()
	}

	logger.L().Debug("echo.started",
		"log_path", logger.Path(),
		"newline", cfg.Output.Newline,
		"max_failures", cfg.Retry.MaxConsecutiveFailures,
	)

	uc := usecase.NewEchoLines(
		linereader.New(in),
		linewriter.New(cmd.OutOrStdout(), cfg.Output.Newline),
		cfg.Retry,
		usecase.WithLogger(logger.L()),
	)

	_, err := uc.Execute(ctx)
	return err
}
