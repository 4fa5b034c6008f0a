package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var upload = struct {
	path string
	file string
}{}

var uploadCmd = &cobra.Command{
	Use:     "upload",
	Short:   "Uploads a file to the cloud drive",
	Example: `  sheetkit upload --file "marks.xlsx" --path "/reports/2026/marks.xlsx"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doUpload(cmd.Context())
	},
}

func init() {
	uploadCmd.Flags().StringVar(&upload.path, "path", upload.path, "Destination drive path")
	uploadCmd.Flags().StringVar(&upload.file, "file", upload.file, "Source file")

	uploadCmd.MarkFlagRequired("path")
	uploadCmd.MarkFlagRequired("file")

	RootCmd.AddCommand(uploadCmd)
}

func doUpload(ctx context.Context) error {
	client, err := diskClient()
	if err != nil {
		return err
	}

	f, err := os.Open(upload.file)
	if err != nil {
		return err
	}

	defer f.Close()

	if err := client.Upload(ctx, upload.path, f); err != nil {
		return err
	}

	infof("uploaded %s to %s", upload.file, upload.path)

	return nil
}
