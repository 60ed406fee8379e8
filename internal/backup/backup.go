// Package backup writes the debugging artifacts of an import run to disk:
// the raw fetched rows, the processed dataset, and the final report. Backup
// failures are logged and swallowed; they never fail a run.
package backup

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Artifact file names inside the backup directory. Each run overwrites the
// previous artifacts.
const (
	rawFile       = "import_raw.json"
	processedFile = "import_processed.json"
	reportFile    = "import_report.json"
)

// Writer persists run artifacts into a directory.
type Writer struct {
	log *slog.Logger
	dir string
}

// NewWriter creates a Writer for dir. The directory is created on first save.
func NewWriter(log *slog.Logger, dir string) *Writer {
	return &Writer{log: log, dir: dir}
}

// SaveRaw writes the raw fetched rows.
func (w *Writer) SaveRaw(v any) {
	w.save(rawFile, v)
}

// SaveProcessed writes the processed dataset.
func (w *Writer) SaveProcessed(v any) {
	w.save(processedFile, v)
}

// SaveReport writes the final run report.
func (w *Writer) SaveReport(v any) {
	w.save(reportFile, v)
}

func (w *Writer) save(name string, v any) {
	if w.dir == "" {
		return
	}

	if err := w.write(name, v); err != nil {
		w.log.Error("error saving backup artifact", "file", name, "error", err)
		return
	}
	w.log.Info("backup artifact saved", "filepath", filepath.Join(w.dir, name))
}

func (w *Writer) write(name string, v any) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	if err := os.WriteFile(filepath.Join(w.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
