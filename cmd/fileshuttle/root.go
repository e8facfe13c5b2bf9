package main

import (
	"context"
	"os"

	"github.com/rishabhskr/fileshuttle/cmd/fileshuttle/commands"
	"github.com/rishabhskr/fileshuttle/cmd/fileshuttle/opts"
	"github.com/rishabhskr/fileshuttle/pkg/config"
	"github.com/rishabhskr/fileshuttle/pkg/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
	batch      bool
)

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "fileshuttle",
		Short: "Recurring file transfer jobs with audit log and notifications",
		Long: `fileshuttle moves or copies a source file or tree into a destination,
optionally under a date-derived subfolder, on a recurring schedule. Every
run is recorded in a local audit log and can be reported by email.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd)

			cfg, err := config.Load(ctx, configFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			rootOpts.Config = cfg
			rootOpts.ConfigPath = configFile
			rootOpts.UserLogger = log.NewUserLogger(ctx)
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if batch {
				// The scheduler invokes the binary with --batch; it is the
				// same path as `fileshuttle run`, tagged for the audit log.
				return commands.ExecuteTransfer(cmd.Context(), rootOpts, "scheduled")
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "fileshuttle.json", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().BoolVar(&batch, "batch", false, "run the configured transfer non-interactively")

	cmd.AddCommand(
		commands.NewRunCmd(rootOpts),
		commands.NewPreviewCmd(rootOpts),
		commands.NewLogsCmd(rootOpts),
		commands.NewScheduleCmd(rootOpts),
		commands.NewTestEmailCmd(rootOpts),
	)

	return cmd
}

// setupLogging configures zerolog based on flags and returns a context
// carrying the logger
func setupLogging(cmd *cobra.Command) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	return logger.WithContext(cmd.Context())
}
