package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rishabhskr/fileshuttle/cmd/fileshuttle/opts"
	"github.com/rishabhskr/fileshuttle/pkg/schedule"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewScheduleCmd creates the schedule command group
func NewScheduleCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Register, remove or query the recurring batch run",
	}

	cmd.AddCommand(
		newScheduleCreateCmd(o),
		newScheduleDeleteCmd(o),
		newScheduleStatusCmd(o),
	)

	return cmd
}

func newScheduleCreateCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Register the configured transfer with the OS scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := o.Config
			if cfg.SourcePath == "" || cfg.DestinationPath == "" || cfg.TaskName == "" {
				return errors.New("source path, destination path and task name must be configured")
			}

			freq, err := schedule.ParseFrequency(cfg.ScheduleFrequency)
			if err != nil {
				return errors.Errorf("invalid configuration: %w", err)
			}

			// The registered task reads this exact document back, so make
			// sure what is on disk matches what was just validated.
			if err := cfg.Save(o.ConfigPath); err != nil {
				return errors.Errorf("saving config for scheduled runs: %w", err)
			}

			exe, err := os.Executable()
			if err != nil {
				return errors.Errorf("resolving executable path: %w", err)
			}
			configPath, err := filepath.Abs(o.ConfigPath)
			if err != nil {
				return errors.Errorf("resolving config path: %w", err)
			}

			task := schedule.Task{
				Name:      cfg.TaskName,
				Time:      cfg.ScheduleTime,
				Frequency: freq,
				Command:   fmt.Sprintf(`"%s" --batch --config "%s"`, exe, configPath),
			}
			if err := schedule.New().Create(cmd.Context(), task); err != nil {
				return err
			}

			o.UserLogger.Successf("task %q registered: %s at %s", cfg.TaskName, cfg.ScheduleFrequency, cfg.ScheduleTime)
			return nil
		},
	}
}

func newScheduleDeleteCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Remove the registered task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := schedule.New().Delete(cmd.Context(), o.Config.TaskName); err != nil {
				return err
			}
			o.UserLogger.Successf("task %q deleted", o.Config.TaskName)
			return nil
		},
	}
}

func newScheduleStatusCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the task is registered and when it fires next",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := schedule.New().Status(cmd.Context(), o.Config.TaskName)
			if err != nil {
				return err
			}

			if !status.Exists {
				fmt.Printf("Task %q is not registered.\n", o.Config.TaskName)
				return nil
			}

			fmt.Printf("Task: %s\nStatus: %s\nNext run: %s\n", o.Config.TaskName, status.State, status.NextRun)
			return nil
		},
	}
}
