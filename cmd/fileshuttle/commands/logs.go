package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rishabhskr/fileshuttle/cmd/fileshuttle/opts"
	"github.com/rishabhskr/fileshuttle/pkg/audit"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewLogsCmd creates the logs command group
func NewLogsCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Inspect, export or trim the audit log",
	}

	cmd.AddCommand(
		newLogsListCmd(o),
		newLogsExportCmd(o),
		newLogsPruneCmd(o),
	)

	return cmd
}

func newLogsListCmd(o *opts.RootOpts) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent runs, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := audit.Open(o.Config.DatabasePath)
			if err != nil {
				return errors.Errorf("opening audit log: %w", err)
			}
			defer func() {
				_ = store.Close()
			}()

			recs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return errors.Errorf("listing runs: %w", err)
			}

			if len(recs) == 0 {
				fmt.Println("No runs recorded yet.")
				return nil
			}

			for _, rec := range recs {
				detail := rec.DateFolder
				if detail == "" {
					detail = "-"
				}
				line := fmt.Sprintf("%s  %-7s %-5s %4d files  folder=%-12s mode=%s  %s -> %s",
					rec.RunAt.Format("2006-01-02 15:04:05"),
					rec.Status, rec.Operation, rec.FilesProcessed,
					detail, rec.ExecutionMode, rec.Source, rec.FinalDestination)
				if rec.ErrorDetail != "" {
					line += "  error=" + rec.ErrorDetail
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 200, "maximum number of runs to show")
	return cmd
}

func newLogsExportCmd(o *opts.RootOpts) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the complete audit log as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := audit.Open(o.Config.DatabasePath)
			if err != nil {
				return errors.Errorf("opening audit log: %w", err)
			}
			defer func() {
				_ = store.Close()
			}()

			f, err := os.Create(out)
			if err != nil {
				return errors.Errorf("creating export file: %w", err)
			}
			defer func() {
				_ = f.Close()
			}()

			if err := store.ExportCSV(cmd.Context(), f); err != nil {
				return errors.Errorf("exporting audit log: %w", err)
			}

			o.UserLogger.Successf("audit log exported to %s", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "fileshuttle_logs.csv", "path of the CSV file to write")
	return cmd
}

func newLogsPruneCmd(o *opts.RootOpts) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete audit records older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := audit.Open(o.Config.DatabasePath)
			if err != nil {
				return errors.Errorf("opening audit log: %w", err)
			}
			defer func() {
				_ = store.Close()
			}()

			deleted, err := store.Prune(cmd.Context(), time.Duration(days)*24*time.Hour)
			if err != nil {
				return errors.Errorf("pruning audit log: %w", err)
			}

			o.UserLogger.Successf("deleted %d old log entries", deleted)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "delete records older than this many days")
	return cmd
}
