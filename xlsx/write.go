package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteColumn writes values down a column, starting at the 1-based row
// offset, overwriting or extending existing rows as needed.
func (d *Document) WriteColumn(sheet, column string, offset int, values []string) error {
	if offset <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOffset, offset)
	}

	index, err := ColumnIndex(column)
	if err != nil {
		return err
	}

	if err := d.sheet(sheet); err != nil {
		return err
	}

	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(index+1, offset+i)
		if err != nil {
			return err
		}

		if err := d.f.SetCellStr(sheet, cell, v); err != nil {
			return err
		}
	}

	return nil
}

// WriteRow appends a row after the last populated row of the sheet.
func (d *Document) WriteRow(sheet string, values []string) error {
	rows, err := d.rows(sheet)
	if err != nil {
		return err
	}

	row := len(rows) + 1

	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}

		if err := d.f.SetCellStr(sheet, cell, v); err != nil {
			return err
		}
	}

	return nil
}
