package commands

import (
	"path/filepath"
	"time"

	"github.com/rishabhskr/fileshuttle/cmd/fileshuttle/opts"
	"github.com/rishabhskr/fileshuttle/pkg/config"
	"github.com/rishabhskr/fileshuttle/pkg/datefolder"
	"github.com/rishabhskr/fileshuttle/pkg/notify"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewTestEmailCmd creates the test-email command
func NewTestEmailCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "test-email",
		Short: "Send a test message to verify the email configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			notifier := notify.New(o.Config.NotifySettings())
			if !notifier.Configured() {
				return errors.New("email is not configured: sender, password and recipient are required")
			}

			preview := o.Config.DestinationPath
			if preview == "" {
				preview = "Not configured"
			} else if o.Config.UseDateFolders {
				source, err := config.ParseDateSource(o.Config.DateFolderType)
				if err == nil {
					folder := datefolder.Resolve(true, source,
						config.ParseDateFormat(o.Config.DateFormat),
						o.Config.CustomDate, time.Now())
					preview = filepath.Join(preview, filepath.FromSlash(folder))
				}
			}

			if err := notifier.Send(cmd.Context(), notify.TestMessage(preview)); err != nil {
				return errors.Errorf("sending test email: %w", err)
			}

			o.UserLogger.Success("test email sent, check your inbox for configuration details")
			return nil
		},
	}
}
