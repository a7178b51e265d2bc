package ledgercsv

import (
	"errors"
	"fmt"
)

var ErrHeader = errors.New("unexpected CSV header")

// ImportFormatError locates a malformed value in an imported file. Line is
// 1-based and counts the header; Column is 1-based, 0 when the whole row is
// at fault.
type ImportFormatError struct {
	Line   int
	Column int
	Err    error
}

func (e *ImportFormatError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ImportFormatError) Unwrap() error {
	return e.Err
}
