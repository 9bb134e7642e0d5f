// Package ocr wraps the external text tools (poppler's pdftotext/pdftoppm
// and tesseract) behind a single Extractor. Direct text-layer extraction is
// cheap and tried first; rasterize-and-recognize is the expensive fallback.
package ocr

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ufpr-cpa/inep-extractor/internal/common"
)

// Config holds binary locations and recognition behavior.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Language    string        // tesseract language, default "por"
	DPILadder   []int         // rasterization DPIs tried in order, default 300,150,72
	PageTimeout time.Duration // per-page recognition budget, default 2m
	MaxPages    int           // 0 = no limit
}

// Extractor runs the external tools.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "por"
	}
	if len(cfg.DPILadder) == 0 {
		cfg.DPILadder = []int{300, 150, 72}
	}
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = 2 * time.Minute
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// DirectText extracts the PDF's text layer across all pages. Pages are
// separated by form feeds (pdftotext's default page separator).
func (e *Extractor) DirectText(ctx context.Context, path string) (string, int, error) {
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, common.WrapError(err, "pdftotext: "+truncate(string(errb), 512))
	}
	text := string(out)
	pages := 1 + strings.Count(text, "\f")
	return text, pages, nil
}
