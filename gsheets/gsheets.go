// Package gsheets wraps the Google Sheets API with the range conventions
// used throughout this toolkit: column letters, a 1-based row offset and an
// end row ('size'), with offset defaulting to 1 and size to 1000. Every call
// is a synchronous network request; service errors surface unchanged and no
// retries are attempted beyond whatever the underlying HTTP client does.
package gsheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client issues range reads and writes against a remote spreadsheet,
// identified by its spreadsheet ID and a tab name.
type Client struct {
	service *sheets.Service
}

// NewClient creates a Sheets client. Tests inject a stub transport with
// option.WithEndpoint and option.WithoutAuthentication.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client (%v)", err)
	}

	return &Client{service: service}, nil
}

// ReadRange reads the rectangular range between the from and to columns,
// rows offset..size. Rows are right-padded with empty strings to the width
// of the widest row.
func (c *Client) ReadRange(ctx context.Context, spreadsheet, tab, from, to string, offset, size int) ([][]string, error) {
	offset, size, err := window(offset, size)
	if err != nil {
		return nil, err
	}

	response, err := c.service.Spreadsheets.Values.Get(spreadsheet, rangeString(tab, from, offset, to, size)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet (%v)", err)
	}

	width := 0
	for _, row := range response.Values {
		if len(row) > width {
			width = len(row)
		}
	}

	rows := make([][]string, len(response.Values))
	for i, row := range response.Values {
		rows[i] = make([]string, width)
		for j, v := range row {
			rows[i][j] = fmt.Sprintf("%v", v)
		}
	}

	return rows, nil
}

// ReadColumn reads a single column, rows offset..size, as a flat list.
func (c *Client) ReadColumn(ctx context.Context, spreadsheet, tab, column string, offset, size int) ([]string, error) {
	rows, err := c.ReadRange(ctx, spreadsheet, tab, column, column, offset, size)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(rows))
	for _, row := range rows {
		v := ""
		if len(row) > 0 {
			v = row[0]
		}

		values = append(values, v)
	}

	return values, nil
}

// ReadByHeaders fetches the first size rows of the tab, takes row 1 as the
// header row and projects every following row onto the requested headers.
// Missing cells read as empty strings. Behaviour with duplicated headers is
// undefined.
func (c *Client) ReadByHeaders(ctx context.Context, spreadsheet, tab string, headers []string, size int) ([]map[string]string, error) {
	if size == 0 {
		size = DefaultSize
	}

	if size < 1 {
		return nil, fmt.Errorf("%w: size %d, offset 1", ErrInvalidSize, size)
	}

	area := fmt.Sprintf("'%s'!%d:%d", tab, 1, size)

	response, err := c.service.Spreadsheets.Values.Get(spreadsheet, area).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet (%v)", err)
	}

	if len(response.Values) == 0 {
		return []map[string]string{}, nil
	}

	// ... index the header row (last match wins)
	index := map[string]int{}
	for i, v := range response.Values[0] {
		index[fmt.Sprintf("%v", v)] = i
	}

	for _, h := range headers {
		if _, ok := index[h]; !ok {
			return nil, fmt.Errorf("no column with header '%s'", h)
		}
	}

	records := make([]map[string]string, 0, len(response.Values)-1)
	for _, row := range response.Values[1:] {
		record := map[string]string{}
		for _, h := range headers {
			v := ""
			if ix := index[h]; ix < len(row) {
				v = fmt.Sprintf("%v", row[ix])
			}

			record[h] = v
		}

		records = append(records, record)
	}

	return records, nil
}
