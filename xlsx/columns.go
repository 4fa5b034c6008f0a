package xlsx

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidOffset is returned by writes given a row offset of zero or less,
// before anything is touched.
var ErrInvalidOffset = errors.New("row offset must be greater than zero")

// ColumnIndex translates a column letter ("A", "AA", ...) to a zero-based
// column index.
func ColumnIndex(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return 0, fmt.Errorf("invalid column '%s' (%v)", name, err)
	}

	return n - 1, nil
}

// ColumnName translates a zero-based column index to a column letter.
func ColumnName(index int) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("invalid column index %d", index)
	}

	return excelize.ColumnNumberToName(index + 1)
}

// Column reads the cells of a column, by zero-based index, as strings.
// Trailing empty cells are omitted.
func (d *Document) Column(sheet string, index int) ([]string, error) {
	if index < 0 {
		return nil, fmt.Errorf("invalid column index %d", index)
	}

	cols, err := d.columns(sheet)
	if err != nil {
		return nil, err
	}

	if index >= len(cols) {
		return []string{}, nil
	}

	return cols[index], nil
}

// ColumnByName reads the cells of a column, by column letter, as strings.
func (d *Document) ColumnByName(sheet, name string) ([]string, error) {
	index, err := ColumnIndex(name)
	if err != nil {
		return nil, err
	}

	return d.Column(sheet, index)
}

// ColumnByHeader reads the cells below the column whose first-row cell
// matches header. If the header occurs more than once the last match wins.
func (d *Document) ColumnByHeader(sheet, header string) ([]string, error) {
	rows, err := d.rows(sheet)
	if err != nil {
		return nil, err
	}

	index, err := headerIndex(rows, header)
	if err != nil {
		return nil, err
	}

	column := []string{}
	for _, row := range rows[1:] {
		v := ""
		if index < len(row) {
			v = row[index]
		}

		column = append(column, v)
	}

	return column, nil
}

// ReadByHeaders reads the columns matching the listed headers and zips them
// into one record per row, keyed by header. Shorter columns are padded with
// empty strings so every record has a value for every header. Behaviour with
// duplicated headers is undefined.
func (d *Document) ReadByHeaders(sheet string, headers []string) ([]map[string]string, error) {
	rows, err := d.rows(sheet)
	if err != nil {
		return nil, err
	}

	// ... resolve headers against row 1
	index := map[string]int{}
	for _, h := range headers {
		ix, err := headerIndex(rows, h)
		if err != nil {
			return nil, err
		}

		index[h] = ix
	}

	// ... collect columns, tracking the longest
	columns := map[string][]string{}
	depth := 0

	for h, ix := range index {
		column := []string{}
		for _, row := range rows[1:] {
			v := ""
			if ix < len(row) {
				v = row[ix]
			}

			column = append(column, v)
		}

		for len(column) > 0 && column[len(column)-1] == "" {
			column = column[:len(column)-1]
		}

		if len(column) > depth {
			depth = len(column)
		}

		columns[h] = column
	}

	// ... zip into records, padding short columns
	records := make([]map[string]string, depth)
	for i := range records {
		record := map[string]string{}
		for _, h := range headers {
			v := ""
			if i < len(columns[h]) {
				v = columns[h][i]
			}

			record[h] = v
		}

		records[i] = record
	}

	return records, nil
}

// Rows reads the populated rows of a sheet as strings. Trailing empty cells
// and rows are omitted.
func (d *Document) Rows(sheet string) ([][]string, error) {
	return d.rows(sheet)
}

func (d *Document) rows(sheet string) ([][]string, error) {
	if err := d.sheet(sheet); err != nil {
		return nil, err
	}

	return d.f.GetRows(sheet)
}

func (d *Document) columns(sheet string) ([][]string, error) {
	if err := d.sheet(sheet); err != nil {
		return nil, err
	}

	return d.f.GetCols(sheet)
}

// headerIndex matches header against the first row. Last match wins.
func headerIndex(rows [][]string, header string) (int, error) {
	if len(rows) == 0 {
		return 0, fmt.Errorf("no header row")
	}

	index := -1
	for i, v := range rows[0] {
		if v == header {
			index = i
		}
	}

	if index < 0 {
		return 0, fmt.Errorf("no column with header '%s'", header)
	}

	return index, nil
}
