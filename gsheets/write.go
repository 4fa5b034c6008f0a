package gsheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/deptworks/sheetkit/xlsx"
)

// WriteColumn writes values down a single column starting at the 1-based
// row offset. The write is columns-major with raw input (no client-side
// formula evaluation).
func (c *Client) WriteColumn(ctx context.Context, spreadsheet, tab, column string, offset int, values []string) error {
	return c.WriteRange(ctx, spreadsheet, tab, column, offset, [][]string{values})
}

// WriteRange writes a block of columns starting at the given column letter
// and 1-based row offset. columns[0] lands in the start column, columns[1]
// in the next one, and so on.
func (c *Client) WriteRange(ctx context.Context, spreadsheet, tab, from string, offset int, columns [][]string) error {
	if offset < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidOffset, offset)
	}

	if len(columns) == 0 {
		return nil
	}

	start, err := xlsx.ColumnIndex(from)
	if err != nil {
		return err
	}

	to, err := xlsx.ColumnName(start + len(columns) - 1)
	if err != nil {
		return err
	}

	depth := 0
	for _, column := range columns {
		if len(column) > depth {
			depth = len(column)
		}
	}

	if depth == 0 {
		return nil
	}

	values := make([][]interface{}, len(columns))
	for i, column := range columns {
		values[i] = make([]interface{}, len(column))
		for j, v := range column {
			values[i][j] = v
		}
	}

	rq := sheets.ValueRange{
		Range:          rangeString(tab, from, offset, to, offset+depth-1),
		MajorDimension: "COLUMNS",
		Values:         values,
	}

	if _, err := c.service.Spreadsheets.Values.Update(spreadsheet, rq.Range, &rq).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to write to sheet (%v)", err)
	}

	return nil
}
