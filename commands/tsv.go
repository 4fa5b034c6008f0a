package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/deptworks/sheetkit/xlsx"
)

// writeTSV writes a grid of rows as tab-separated values.
func writeTSV(f io.Writer, rows [][]string) error {
	w := csv.NewWriter(f)
	w.Comma = '\t'

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

// readTSV reads tab-separated values into a grid of rows. Rows may vary in
// length.
func readTSV(f io.Reader) ([][]string, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	return r.ReadAll()
}

// transpose flips a rows-major grid into a columns-major one, padding short
// rows with empty strings.
func transpose(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	columns := make([][]string, width)
	for i := range columns {
		columns[i] = make([]string, len(rows))
		for j, row := range rows {
			if i < len(row) {
				columns[i][j] = row[i]
			}
		}
	}

	return columns
}

// readGrid loads a local .tsv or .xlsx file as a grid of rows. For a
// workbook the named sheet is read, defaulting to the first sheet.
func readGrid(file, sheet string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".tsv", ".txt":
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}

		defer f.Close()

		return readTSV(f)

	case ".xlsx":
		document, err := xlsx.Open(file)
		if err != nil {
			return nil, err
		}

		defer document.Close()

		if sheet == "" {
			sheets := document.Sheets()
			if len(sheets) == 0 {
				return nil, fmt.Errorf("no sheets in %s", file)
			}

			sheet = sheets[0]
		}

		return document.Rows(sheet)

	default:
		return nil, fmt.Errorf("unsupported file type '%s' - expected .tsv or .xlsx", filepath.Ext(file))
	}
}

// writeGrid stores a grid of rows to a local .tsv or .xlsx file.
func writeGrid(f io.Writer, file, sheet string, rows [][]string) error {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".tsv", ".txt":
		return writeTSV(f, rows)

	case ".xlsx":
		document := xlsx.New()
		defer document.Close()

		if sheet != "" {
			if err := document.RenameSheet("Sheet1", sheet); err != nil {
				return err
			}
		} else {
			sheet = "Sheet1"
		}

		for _, row := range rows {
			if err := document.WriteRow(sheet, row); err != nil {
				return err
			}
		}

		return document.Save(f)

	default:
		return fmt.Errorf("unsupported file type '%s' - expected .tsv or .xlsx", filepath.Ext(file))
	}
}
