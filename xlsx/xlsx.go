// Package xlsx is a thin façade over the excelize engine for the kind of
// column and row plumbing department staff scripts need: open or create a
// workbook, pull columns by letter or header, write columns and rows back
// and save the whole document in one go.
package xlsx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Document is an in-memory spreadsheet. A Document is created empty, loaded
// from a file or loaded from a byte buffer, and has to be explicitly saved
// to persist any changes.
type Document struct {
	f *excelize.File
}

// New creates an empty document with the engine's default worksheet.
func New() *Document {
	return &Document{
		f: excelize.NewFile(),
	}
}

// Open loads a document from an .xlsx file.
func Open(path string) (*Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open spreadsheet %s (%v)", path, err)
	}

	return &Document{f: f}, nil
}

// OpenReader loads a document from a stream.
func OpenReader(r io.Reader) (*Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read spreadsheet (%v)", err)
	}

	return &Document{f: f}, nil
}

// OpenBytes loads a document from a byte buffer.
func OpenBytes(b []byte) (*Document, error) {
	return OpenReader(bytes.NewReader(b))
}

// Close releases the underlying document package. The document is unusable
// afterwards.
func (d *Document) Close() error {
	return d.f.Close()
}

// Sheets lists the worksheet names in workbook order.
func (d *Document) Sheets() []string {
	return d.f.GetSheetList()
}

// AddSheet appends an empty worksheet.
func (d *Document) AddSheet(name string) error {
	if _, err := d.f.NewSheet(name); err != nil {
		return fmt.Errorf("unable to add sheet '%s' (%v)", name, err)
	}

	return nil
}

// RenameSheet renames an existing worksheet.
func (d *Document) RenameSheet(from, to string) error {
	if err := d.sheet(from); err != nil {
		return err
	}

	return d.f.SetSheetName(from, to)
}

// Save writes the entire document to w. There is no partial or incremental
// save.
func (d *Document) Save(w io.Writer) error {
	return d.f.Write(w)
}

// SaveAs writes the entire document to a file.
func (d *Document) SaveAs(path string) error {
	return d.f.SaveAs(path)
}

// Bytes serializes the document to a byte buffer.
func (d *Document) Bytes() ([]byte, error) {
	b, err := d.f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// sheet returns a lookup error naming the sheet if it does not exist.
func (d *Document) sheet(name string) error {
	ix, err := d.f.GetSheetIndex(name)
	if err != nil {
		return err
	}

	if ix < 0 {
		return fmt.Errorf("no sheet named '%s'", name)
	}

	return nil
}
