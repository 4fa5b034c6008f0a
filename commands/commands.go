// Package commands implements the sheetkit CLI: authorisation against the
// two cloud services, range get/put against a Google Sheets worksheet, cell
// merges, and file transfer to and from the cloud drive.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/deptworks/sheetkit/config"
)

const APP = "sheetkit"

var options = struct {
	config string
	debug  bool
}{
	config: filepath.Join(DEFAULT_WORKDIR, "sheetkit.toml"),
	debug:  false,
}

var RootCmd = &cobra.Command{
	Use:   APP,
	Short: "Spreadsheet utilities for departmental record keeping",
	Long: `sheetkit reads and writes spreadsheet data across three backends: local
.xlsx workbooks, Google Sheets worksheets and spreadsheets stored on a cloud
drive. It is intended for scripted use, e.g. from cron jobs that keep class
lists, marks and enrolment sheets in sync.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		errorf("%v", err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&options.config, "config", options.config, "Configuration file")
	RootCmd.PersistentFlags().BoolVar(&options.debug, "debug", options.debug, "Displays internal information for diagnosing errors")
}

func loadConfig() (config.Config, error) {
	return config.Load(options.config, DEFAULT_WORKDIR)
}

var reSpreadsheet = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)

// spreadsheetID extracts the document ID from a Google Sheets URL.
func spreadsheetID(url string) (string, error) {
	match := reSpreadsheet.FindStringSubmatch(url)
	if len(match) < 2 {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}
