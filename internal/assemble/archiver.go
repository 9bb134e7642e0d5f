package assemble

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Archiver moves a fully extracted source document out of the inbox so a
// rerun only touches what still needs work.
type Archiver interface {
	Archive(path string) error
}

// DirArchiver moves files into a flat verified directory. Archive failures
// are reported to the caller but never affect the record already produced.
type DirArchiver struct {
	dir    string
	logger *slog.Logger
}

func NewDirArchiver(dir string, logger *slog.Logger) *DirArchiver {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirArchiver{dir: dir, logger: logger}
}

func (d *DirArchiver) Archive(path string) error {
	if d.dir == "" {
		return nil
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create verified dir: %w", err)
	}

	dest := filepath.Join(d.dir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("archive %s: %w", filepath.Base(path), err)
	}

	d.logger.Info("archive.move.ok", "source", path, "dest", dest)
	return nil
}
