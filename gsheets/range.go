package gsheets

import (
	"errors"
	"fmt"
)

// Default row window for range reads.
const (
	DefaultOffset = 1
	DefaultSize   = 1000
)

var (
	// ErrInvalidOffset is returned for an offset below 1, before any
	// network call is made.
	ErrInvalidOffset = errors.New("offset must be greater than or equal to 1")

	// ErrInvalidSize is returned when the end row is below the start row,
	// before any network call is made.
	ErrInvalidSize = errors.New("size must be greater than or equal to offset")
)

// window applies the default offset and size and validates the result.
func window(offset, size int) (int, int, error) {
	if offset == 0 {
		offset = DefaultOffset
	}

	if size == 0 {
		size = DefaultSize
	}

	if offset < 1 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidOffset, offset)
	}

	if size < offset {
		return 0, 0, fmt.Errorf("%w: size %d, offset %d", ErrInvalidSize, size, offset)
	}

	return offset, size, nil
}

// rangeString builds the service range syntax, e.g. 'Marks'!A2:D100.
func rangeString(tab, from string, offset int, to string, size int) string {
	return fmt.Sprintf("'%s'!%s%d:%s%d", tab, from, offset, to, size)
}
