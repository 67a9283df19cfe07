package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jverlinden/treecompare/pkg/models"
)

// WriteError indicates the report sink could not be opened or written.
// The in-memory report survives; callers may retry against another sink.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write report to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WriteFile renders the report into the sink file, creating parent
// directories as needed
func WriteFile(r *models.ComparisonReport, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	file, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if err := Render(file, r); err != nil {
		file.Close()
		return &WriteError{Path: path, Err: err}
	}

	if err := file.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	return nil
}
