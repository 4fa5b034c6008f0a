package gsheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/deptworks/sheetkit/xlsx"
)

// MergeCells merges the rectangular range between the from and to columns,
// rows offset..size, into a single cell.
func (c *Client) MergeCells(ctx context.Context, spreadsheet, tab, from, to string, offset, size int) error {
	area, err := c.gridRange(ctx, spreadsheet, tab, from, to, offset, size)
	if err != nil {
		return err
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				MergeCells: &sheets.MergeCellsRequest{
					Range:     area,
					MergeType: "MERGE_ALL",
				},
			},
		},
	}

	if _, err := c.service.Spreadsheets.BatchUpdate(spreadsheet, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to merge cells (%v)", err)
	}

	return nil
}

// UnmergeCells splits any merges within the rectangular range between the
// from and to columns, rows offset..size.
func (c *Client) UnmergeCells(ctx context.Context, spreadsheet, tab, from, to string, offset, size int) error {
	area, err := c.gridRange(ctx, spreadsheet, tab, from, to, offset, size)
	if err != nil {
		return err
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				UnmergeCells: &sheets.UnmergeCellsRequest{
					Range: area,
				},
			},
		},
	}

	if _, err := c.service.Spreadsheets.BatchUpdate(spreadsheet, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to unmerge cells (%v)", err)
	}

	return nil
}

// gridRange validates the window and resolves the tab name to the numeric
// sheet id the batch update API requires.
func (c *Client) gridRange(ctx context.Context, spreadsheet, tab, from, to string, offset, size int) (*sheets.GridRange, error) {
	offset, size, err := window(offset, size)
	if err != nil {
		return nil, err
	}

	left, err := xlsx.ColumnIndex(from)
	if err != nil {
		return nil, err
	}

	right, err := xlsx.ColumnIndex(to)
	if err != nil {
		return nil, err
	}

	id, err := c.sheetID(ctx, spreadsheet, tab)
	if err != nil {
		return nil, err
	}

	return &sheets.GridRange{
		SheetId:          id,
		StartRowIndex:    int64(offset - 1),
		EndRowIndex:      int64(size),
		StartColumnIndex: int64(left),
		EndColumnIndex:   int64(right + 1),
	}, nil
}

func (c *Client) sheetID(ctx context.Context, spreadsheet, tab string) (int64, error) {
	document, err := c.service.Spreadsheets.Get(spreadsheet).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to fetch spreadsheet (%v)", err)
	}

	for _, sheet := range document.Sheets {
		if strings.EqualFold(strings.TrimSpace(sheet.Properties.Title), strings.TrimSpace(tab)) {
			return sheet.Properties.SheetId, nil
		}
	}

	return 0, fmt.Errorf("no sheet named '%s'", tab)
}
