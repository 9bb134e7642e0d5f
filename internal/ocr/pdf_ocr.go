package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ufpr-cpa/inep-extractor/internal/common"
)

// Recognize rasterizes every page and runs tesseract on each. Rendering is
// retried down the DPI ladder when pdftoppm fails (large pages can exceed
// memory at 300 DPI). Each page gets its own recognition budget; a page that
// exceeds it is skipped so one pathological page cannot sink the document.
func (e *Extractor) Recognize(ctx context.Context, path string) (string, int, []string, error) {
	tmpDir, err := os.MkdirTemp("", "inep-ocr-*")
	if err != nil {
		return "", 0, nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			e.logger.Warn("ocr.tmpdir.remove_failed", "dir", tmpDir, "error", rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")

	var warns []string
	var pages []string
	for _, dpi := range e.cfg.DPILadder {
		_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", dpi), "-png", path, prefix)
		if err != nil {
			warns = append(warns, fmt.Sprintf("render at %d dpi: %v: %s", dpi, err, truncate(string(errb), 512)))
			e.logger.Warn("ocr.render.retry_lower_dpi", "path", path, "dpi", dpi, "error", err)
			continue
		}
		// pdftoppm emits prefix-1.png, prefix-2.png, ...
		matches, _ := filepath.Glob(prefix + "-*.png")
		sort.Strings(matches)
		if len(matches) > 0 {
			pages = matches
			break
		}
		warns = append(warns, fmt.Sprintf("render at %d dpi produced no images", dpi))
	}
	if len(pages) == 0 {
		return "", 0, warns, common.WrapError(common.ErrPageRender, "no pages rendered")
	}
	if e.cfg.MaxPages > 0 && len(pages) > e.cfg.MaxPages {
		pages = pages[:e.cfg.MaxPages]
	}

	var b strings.Builder
	for i, img := range pages {
		txt, err := e.recognizePage(ctx, img)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				warns = append(warns, fmt.Sprintf("page %d: %v", i+1, common.ErrPageTimeout))
				e.logger.Warn("ocr.page.timeout", "path", path, "page", i+1, "budget", e.cfg.PageTimeout)
			} else {
				warns = append(warns, fmt.Sprintf("page %d: %v", i+1, err))
				e.logger.Warn("ocr.page.failed", "path", path, "page", i+1, "error", err)
			}
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n") // keep a clear page break marker
		}
		b.WriteString(txt)
	}

	return b.String(), len(pages), warns, nil
}

// recognizePage runs tesseract on one rendered page under the per-page
// budget. The batch context cancels everything; the per-page deadline only
// skips this page.
func (e *Extractor) recognizePage(ctx context.Context, imgPath string) (string, error) {
	pctx, cancel := context.WithTimeout(ctx, e.cfg.PageTimeout)
	defer cancel()

	out, errb, err := e.runner.Run(pctx, e.cfg.Tesseract, imgPath, "stdout", "-l", e.cfg.Language)
	if err != nil {
		if pctx.Err() != nil && ctx.Err() == nil {
			return "", context.DeadlineExceeded
		}
		return "", fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 512))
	}
	return string(out), nil
}
