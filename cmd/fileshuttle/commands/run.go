package commands

import (
	"context"
	"time"

	"github.com/rishabhskr/fileshuttle/cmd/fileshuttle/opts"
	"github.com/rishabhskr/fileshuttle/pkg/audit"
	"github.com/rishabhskr/fileshuttle/pkg/log"
	"github.com/rishabhskr/fileshuttle/pkg/netshare"
	"github.com/rishabhskr/fileshuttle/pkg/notify"
	"github.com/rishabhskr/fileshuttle/pkg/transfer"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates the run command
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the configured transfer once",
		Long: `Run executes the configured transfer a single time. It will:
1. Resolve the destination, including the optional date folder
2. Copy or move every planned file, stopping at the first failure
3. Record the outcome in the audit log
4. Send the notification email, if configured`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "run").Logger().WithContext(cmd.Context())
			return ExecuteTransfer(ctx, o, "interactive")
		},
	}
}

// 🎯 ExecuteTransfer performs one full run: transfer, audit record,
// console rendering and notification, in that order. The audit record is
// written before anything is rendered so a record exists even if
// rendering fails. Mode tags the audit record and the email subject.
func ExecuteTransfer(ctx context.Context, o *opts.RootOpts, mode string) error {
	ul := o.UserLogger
	runTime := time.Now()

	ul.Header("starting " + o.Config.OperationType + " run")

	cfg, err := o.Config.TransferConfig(runTime)
	if err != nil {
		ul.Errorf("invalid configuration: %s", err)
		return errors.Errorf("building transfer config: %w", err)
	}

	// Map the network share for the duration of the run when configured
	mount := o.Config.NetworkMount()
	if mount.Configured() {
		mapper := netshare.New()
		if err := mapper.Map(ctx, mount); err != nil {
			ul.Errorf("failed to map network drive: %s", err)
			return errors.Errorf("mapping network drive: %w", err)
		}
		defer func() {
			if err := mapper.Unmap(ctx, mount.Drive); err != nil {
				ul.Warningf("failed to unmap network drive: %s", err)
			}
		}()
	}

	exec := &transfer.Executor{OnProgress: ul.LogProgress}
	res := exec.Run(ctx, cfg)

	// The audit record comes first so it exists even if rendering or
	// notification fails. A store failure is reported but never turns a
	// finished transfer into a failed run.
	recordRun(ctx, o, runTime, res, mode)

	if res.Failed() {
		ul.LogFileEvent(log.FileFailed, res.Error.Path, res.Error.Message)
		ul.Errorf("%s failed after %d files: %s", o.Config.OperationType, res.FilesProcessed, res.Error.Message)
	} else {
		ul.Successf("%s completed: %d files to %s in %.2f seconds",
			o.Config.OperationType, res.FilesProcessed, res.FinalDestination, res.Duration.Seconds())
	}

	sendNotification(ctx, o, res, mode)

	if res.Failed() {
		return errors.Errorf("transfer failed: %s", res.ErrorMessage())
	}
	return nil
}

// recordRun appends the run to the audit log
func recordRun(ctx context.Context, o *opts.RootOpts, runTime time.Time, res transfer.Result, mode string) {
	store, err := audit.Open(o.Config.DatabasePath)
	if err != nil {
		o.UserLogger.Warningf("audit log unavailable: %s", err)
		return
	}
	defer func() {
		_ = store.Close()
	}()

	rec := audit.Record{
		RunAt:            runTime,
		Source:           o.Config.SourcePath,
		DestinationBase:  o.Config.DestinationPath,
		FinalDestination: res.FinalDestination,
		Operation:        o.Config.OperationType,
		Status:           res.Status.String(),
		FilesProcessed:   res.FilesProcessed,
		ErrorDetail:      res.ErrorMessage(),
		ScheduleTime:     o.Config.ScheduleTime,
		DateFolder:       res.DateFolder,
		ExecutionMode:    mode,
	}
	if err := store.Append(ctx, rec); err != nil {
		o.UserLogger.Warningf("failed to record run: %s", err)
	}
}

// sendNotification dispatches the outcome email; failures are logged and
// swallowed
func sendNotification(ctx context.Context, o *opts.RootOpts, res transfer.Result, mode string) {
	notifier := notify.New(o.Config.NotifySettings())
	if !notifier.Configured() {
		zerolog.Ctx(ctx).Debug().Msg("email not configured, skipping notification")
		return
	}

	msg := notify.Render(res, notify.JobInfo{
		Source:          o.Config.SourcePath,
		DestinationBase: o.Config.DestinationPath,
		Operation:       o.Config.OperationType,
		Mode:            mode,
	})
	if err := notifier.Send(ctx, msg); err != nil {
		o.UserLogger.Warningf("failed to send notification email: %s", err)
	}
}
