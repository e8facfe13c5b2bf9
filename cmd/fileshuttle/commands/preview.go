package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rishabhskr/fileshuttle/cmd/fileshuttle/opts"
	"github.com/rishabhskr/fileshuttle/pkg/config"
	"github.com/rishabhskr/fileshuttle/pkg/datefolder"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewPreviewCmd creates the preview command
func NewPreviewCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show where files would land without transferring anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.Config.DestinationPath == "" {
				return errors.New("no base destination path configured")
			}

			source, err := config.ParseDateSource(o.Config.DateFolderType)
			if err != nil {
				return errors.Errorf("invalid configuration: %w", err)
			}

			folder := datefolder.Resolve(
				o.Config.UseDateFolders,
				source,
				config.ParseDateFormat(o.Config.DateFormat),
				o.Config.CustomDate,
				time.Now(),
			)

			if folder == "" {
				fmt.Printf("Files will be %sed to: %s\n", o.Config.OperationType, o.Config.DestinationPath)
				fmt.Println("No date folder will be created.")
				return nil
			}

			fmt.Printf("Files will be %sed to: %s\n", o.Config.OperationType,
				filepath.Join(o.Config.DestinationPath, filepath.FromSlash(folder)))
			fmt.Printf("Date folder: %s\n", folder)
			return nil
		},
	}
}
