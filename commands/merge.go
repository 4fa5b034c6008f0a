package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/deptworks/sheetkit/gsheets"
)

var merge = struct {
	url    string
	tab    string
	from   string
	to     string
	offset int
	size   int
}{}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merges a worksheet cell range into a single cell",
	RunE: func(cmd *cobra.Command, args []string) error {
		return doMerge(cmd.Context(), false)
	},
}

var unmergeCmd = &cobra.Command{
	Use:   "unmerge",
	Short: "Splits any merged cells within a worksheet range",
	RunE: func(cmd *cobra.Command, args []string) error {
		return doMerge(cmd.Context(), true)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{mergeCmd, unmergeCmd} {
		cmd.Flags().StringVar(&merge.url, "url", merge.url, "Spreadsheet URL. Defaults to the configured spreadsheet")
		cmd.Flags().StringVar(&merge.tab, "tab", merge.tab, "Worksheet name")
		cmd.Flags().StringVar(&merge.from, "from", merge.from, "First column of the range")
		cmd.Flags().StringVar(&merge.to, "to", merge.to, "Last column of the range")
		cmd.Flags().IntVar(&merge.offset, "offset", merge.offset, "First row of the range (1-based)")
		cmd.Flags().IntVar(&merge.size, "size", merge.size, "Last row of the range")

		cmd.MarkFlagRequired("tab")
		cmd.MarkFlagRequired("from")
		cmd.MarkFlagRequired("to")

		RootCmd.AddCommand(cmd)
	}
}

func doMerge(ctx context.Context, unmerge bool) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}

	url := merge.url
	if url == "" {
		url = conf.Google.Spreadsheet
	}

	id, err := spreadsheetID(url)
	if err != nil {
		return err
	}

	client, err := authorize(conf.Google.Credentials, SHEETS, conf.Google.Tokens)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%v)", err)
	}

	google, err := gsheets.NewClient(ctx, option.WithHTTPClient(client))
	if err != nil {
		return err
	}

	if unmerge {
		if err := google.UnmergeCells(ctx, id, merge.tab, merge.from, merge.to, merge.offset, merge.size); err != nil {
			return err
		}

		infof("unmerged %s%d:%s%d on '%s'", merge.from, merge.offset, merge.to, merge.size, merge.tab)
	} else {
		if err := google.MergeCells(ctx, id, merge.tab, merge.from, merge.to, merge.offset, merge.size); err != nil {
			return err
		}

		infof("merged %s%d:%s%d on '%s'", merge.from, merge.offset, merge.to, merge.size, merge.tab)
	}

	return nil
}
