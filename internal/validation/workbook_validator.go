package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// WorkbookValidator checks that a configured workbook path points at
// something the loaders can plausibly open, so misconfiguration shows
// up at startup with a clear message instead of as a load failure on
// the first request.
type WorkbookValidator struct {
	logger *slog.Logger
}

// NewWorkbookValidator creates a new workbook validator
func NewWorkbookValidator(logger *slog.Logger) *WorkbookValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookValidator{
		logger: logger,
	}
}

// ValidateWorkbookFile validates that the workbook file exists, is a
// regular file with an Excel extension, and is not empty.
func (v *WorkbookValidator) ValidateWorkbookFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Warn("workbook file does not exist",
			slog.String("path", path))
		return fmt.Errorf("workbook file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat workbook %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("workbook path %s is a directory", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xlsm" {
		return fmt.Errorf("workbook %s has unsupported extension %q", path, ext)
	}

	if info.Size() == 0 {
		return fmt.Errorf("workbook file %s is empty", path)
	}

	v.logger.Debug("workbook file validated",
		slog.String("path", path),
		slog.Int64("size_bytes", info.Size()))
	return nil
}
