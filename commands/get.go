package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/deptworks/sheetkit/gsheets"
)

var get = struct {
	url    string
	tab    string
	from   string
	to     string
	offset int
	size   int
	file   string
	force  bool
}{
	from: "A",
	to:   "Z",
	file: time.Now().Format("2006-01-02T150405.tsv"),
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Retrieves a worksheet range to a local .tsv or .xlsx file",
	Example: `  sheetkit get --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \
               --tab "Class Data" --from A --to E --file "class.xlsx"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doGet(cmd.Context())
	},
}

func init() {
	getCmd.Flags().StringVar(&get.url, "url", get.url, "Spreadsheet URL. Defaults to the configured spreadsheet")
	getCmd.Flags().StringVar(&get.tab, "tab", get.tab, "Worksheet name e.g. 'Class Data'")
	getCmd.Flags().StringVar(&get.from, "from", get.from, "First column of the range")
	getCmd.Flags().StringVar(&get.to, "to", get.to, "Last column of the range")
	getCmd.Flags().IntVar(&get.offset, "offset", get.offset, "First row of the range (1-based)")
	getCmd.Flags().IntVar(&get.size, "size", get.size, "Last row of the range")
	getCmd.Flags().StringVar(&get.file, "file", get.file, "Destination .tsv or .xlsx file")
	getCmd.Flags().BoolVar(&get.force, "force", get.force, "Retrieves the worksheet even if it is unchanged since the last run")

	getCmd.MarkFlagRequired("tab")

	RootCmd.AddCommand(getCmd)
}

func doGet(ctx context.Context) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}

	url := get.url
	if url == "" {
		url = conf.Google.Spreadsheet
	}

	id, err := spreadsheetID(url)
	if err != nil {
		return err
	}

	debugf("spreadsheet - ID:%s  tab:%s  range:%s%d:%s%d", id, get.tab, get.from, get.offset, get.to, get.size)

	// ... skip unchanged spreadsheets
	revision := ""
	if !get.force {
		same, latest := unchanged(ctx, conf.Google.Credentials, conf.Google.Tokens, conf.Workdir, id)
		if same {
			infof("spreadsheet %s is unchanged - skipping (use --force to retrieve anyway)", id)
			return nil
		}

		revision = latest
	}

	client, err := authorize(conf.Google.Credentials, SHEETS, conf.Google.Tokens)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%v)", err)
	}

	google, err := gsheets.NewClient(ctx, option.WithHTTPClient(client))
	if err != nil {
		return err
	}

	rows, err := google.ReadRange(ctx, id, get.tab, get.from, get.to, get.offset, get.size)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data in spreadsheet/range")
	}

	// ... write to a temporary file, rename into place on success
	tmp, err := os.CreateTemp(os.TempDir(), "sheetkit")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := writeGrid(tmp, get.file, get.tab, rows); err != nil {
		return err
	}

	tmp.Close()

	if err := os.MkdirAll(filepath.Dir(get.file), 0770); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), get.file); err != nil {
		return err
	}

	// ... only remember the revision once the retrieval has landed
	if revision != "" {
		if err := cacheRevision(conf.Workdir, id, revision); err != nil {
			warnf("unable to cache revision (%v)", err)
		}
	}

	infof("retrieved '%s' to %s", get.tab, get.file)

	return nil
}

// unchanged compares the spreadsheet's latest Drive revision against the
// one cached under the workdir. It never writes the cache - a failed
// retrieval must leave the cached revision as-is so the next run retries.
// Any failure is treated as 'changed' so the retrieval still happens.
func unchanged(ctx context.Context, credentials, tokens, workdir, id string) (bool, string) {
	client, err := authorize(credentials, DRIVE, tokens)
	if err != nil {
		warnf("revision check skipped (%v)", err)
		return false, ""
	}

	gdrive, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		warnf("revision check skipped (%v)", err)
		return false, ""
	}

	latest, err := gsheets.LatestRevision(ctx, gdrive, id)
	if err != nil {
		warnf("revision check skipped (%v)", err)
		return false, ""
	}

	return cachedRevision(workdir, id) == latest.ID, latest.ID
}

// cachedRevision reads the revision id retrieved by the last successful get,
// or "" if there is none.
func cachedRevision(workdir, id string) string {
	b, err := os.ReadFile(filepath.Join(workdir, ".revisions", id))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(b))
}

func cacheRevision(workdir, id, revision string) error {
	cache := filepath.Join(workdir, ".revisions", id)

	if err := os.MkdirAll(filepath.Dir(cache), 0770); err != nil {
		return err
	}

	return os.WriteFile(cache, []byte(revision), 0660)
}
