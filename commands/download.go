package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/deptworks/sheetkit/disk"
)

var download = struct {
	path string
	file string
}{}

var downloadCmd = &cobra.Command{
	Use:     "download",
	Short:   "Downloads a file from the cloud drive",
	Example: `  sheetkit download --path "/reports/2026/marks.xlsx" --file "marks.xlsx"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doDownload(cmd.Context())
	},
}

func init() {
	downloadCmd.Flags().StringVar(&download.path, "path", download.path, "Drive path of the file to download")
	downloadCmd.Flags().StringVar(&download.file, "file", download.file, "Destination file")

	downloadCmd.MarkFlagRequired("path")
	downloadCmd.MarkFlagRequired("file")

	RootCmd.AddCommand(downloadCmd)
}

func doDownload(ctx context.Context) error {
	client, err := diskClient()
	if err != nil {
		return err
	}

	b, err := client.Download(ctx, download.path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(download.file), 0770); err != nil {
		return err
	}

	if err := os.WriteFile(download.file, b, 0660); err != nil {
		return err
	}

	infof("downloaded %s to %s (%d bytes)", download.path, download.file, len(b))

	return nil
}

// diskClient builds a storage client from the configured app registration.
func diskClient() (*disk.Client, error) {
	conf, err := loadConfig()
	if err != nil {
		return nil, err
	}

	credentials, err := disk.LoadCredentials(conf.Disk.Credentials)
	if err != nil {
		return nil, err
	}

	return disk.NewClient(credentials, conf.Disk.Tokens), nil
}
