package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/deptworks/sheetkit/gsheets"
)

var put = struct {
	url    string
	tab    string
	from   string
	offset int
	sheet  string
	file   string
}{
	from:   "A",
	offset: 1,
}

var putCmd = &cobra.Command{
	Use:   "put",
	Short: "Uploads a local .tsv or .xlsx file to a worksheet range",
	Example: `  sheetkit put --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \
               --tab "Marks" --from B --offset 2 --file "marks.xlsx"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doPut(cmd.Context())
	},
}

func init() {
	putCmd.Flags().StringVar(&put.url, "url", put.url, "Spreadsheet URL. Defaults to the configured spreadsheet")
	putCmd.Flags().StringVar(&put.tab, "tab", put.tab, "Destination worksheet name")
	putCmd.Flags().StringVar(&put.from, "from", put.from, "First column of the destination range")
	putCmd.Flags().IntVar(&put.offset, "offset", put.offset, "First row of the destination range (1-based)")
	putCmd.Flags().StringVar(&put.sheet, "sheet", put.sheet, "Source sheet name for .xlsx files. Defaults to the first sheet")
	putCmd.Flags().StringVar(&put.file, "file", put.file, "Source .tsv or .xlsx file")

	putCmd.MarkFlagRequired("tab")
	putCmd.MarkFlagRequired("file")

	RootCmd.AddCommand(putCmd)
}

func doPut(ctx context.Context) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}

	url := put.url
	if url == "" {
		url = conf.Google.Spreadsheet
	}

	id, err := spreadsheetID(url)
	if err != nil {
		return err
	}

	rows, err := readGrid(put.file, put.sheet)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return fmt.Errorf("%s is empty", put.file)
	}

	client, err := authorize(conf.Google.Credentials, SHEETS, conf.Google.Tokens)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%v)", err)
	}

	google, err := gsheets.NewClient(ctx, option.WithHTTPClient(client))
	if err != nil {
		return err
	}

	if err := google.WriteRange(ctx, id, put.tab, put.from, put.offset, transpose(rows)); err != nil {
		return err
	}

	infof("uploaded %s to '%s'", put.file, put.tab)

	return nil
}
