package dataprocessing

import (
	"github.com/xuri/excelize/v2"
)

// Workbook is an Excel-backed RowSource. Each Workbook wraps one open
// file handle; callers that want concurrent reads against the same
// snapshot open one Workbook per goroutine on the same path.
type Workbook struct {
	path string
	file *excelize.File
}

// OpenWorkbook opens the workbook at path. A missing or malformed file
// is a SourceUnavailableError.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	return &Workbook{path: path, file: f}, nil
}

// Rows returns the raw cell text of every row in the named sheet.
// A sheet that does not exist yields an empty result.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	idx, err := w.file.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, nil
	}
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, &SourceUnavailableError{Path: w.path, Err: err}
	}
	return rows, nil
}

// SheetList returns the workbook's sheet names in file order.
func (w *Workbook) SheetList() []string {
	return w.file.GetSheetList()
}

// Path returns the file path the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// Close releases the underlying file handle.
func (w *Workbook) Close() error {
	return w.file.Close()
}
