package commands

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGridRoundTripThroughWorkbook(t *testing.T) {
	expected := [][]string{
		{"Name", "Mark"},
		{"ann", "7"},
		{"bob", "8"},
	}

	file := filepath.Join(t.TempDir(), "marks.xlsx")

	f, err := os.Create(file)
	if err != nil {
		t.Fatalf("Unexpected error creating %s (%v)", file, err)
	}

	if err := writeGrid(f, file, "Marks", expected); err != nil {
		t.Fatalf("Unexpected error writing workbook (%v)", err)
	}

	f.Close()

	rows, err := readGrid(file, "Marks")
	if err != nil {
		t.Fatalf("Unexpected error reading workbook (%v)", err)
	}

	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %v\n   got:      %v", expected, rows)
	}
}

func TestGridRoundTripThroughTSV(t *testing.T) {
	expected := [][]string{
		{"Name", "Mark"},
		{"ann", "7"},
	}

	file := filepath.Join(t.TempDir(), "marks.tsv")

	f, err := os.Create(file)
	if err != nil {
		t.Fatalf("Unexpected error creating %s (%v)", file, err)
	}

	if err := writeGrid(f, file, "", expected); err != nil {
		t.Fatalf("Unexpected error writing TSV (%v)", err)
	}

	f.Close()

	rows, err := readGrid(file, "")
	if err != nil {
		t.Fatalf("Unexpected error reading TSV (%v)", err)
	}

	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %v\n   got:      %v", expected, rows)
	}
}

func TestReadGridWithUnsupportedExtension(t *testing.T) {
	if _, err := readGrid("marks.pdf", ""); err == nil {
		t.Errorf("Expected error for unsupported file type, got %v", err)
	}
}
