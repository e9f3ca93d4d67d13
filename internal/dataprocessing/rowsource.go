package dataprocessing

import (
	"errors"
	"fmt"
)

// RowSource is the abstract tabular provider the loaders read from.
// Rows returns every row of the named sheet as raw cell text, in sheet
// order. Row 1 is a header and ignored by loaders; data starts at row
// 2. Column 1 always holds the record's symbol. An absent sheet or a
// sheet with no data yields an empty result, not an error; only the
// source itself being unreadable is an error.
type RowSource interface {
	Rows(sheet string) ([][]string, error)
}

// SourceUnavailableError indicates the backing workbook is missing or
// malformed. Individual bad rows never produce this error; they are
// skipped or defaulted during load.
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable: %s: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// IsSourceUnavailable reports whether err is a SourceUnavailableError.
func IsSourceUnavailable(err error) bool {
	var sErr *SourceUnavailableError
	return errors.As(err, &sErr)
}
