package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ufpr-cpa/inep-extractor/internal/common"
)

const (
	// DefaultMinTextLength is the character floor under which a text layer
	// is considered absent (scanned document).
	DefaultMinTextLength = 100
	// DefaultProbePages is how many leading pages are inspected for the
	// floor check.
	DefaultProbePages = 3
)

// Acquirer implements TextAcquirer: direct text layer first, OCR escalation
// when the layer is too thin, cache in front of the OCR cost.
type Acquirer struct {
	direct     DirectExtractor
	recognizer Recognizer // nil = capability not available
	cache      TextCache  // nil = no caching
	minChars   int
	probePages int
	logger     *slog.Logger
}

func NewAcquirer(direct DirectExtractor, recognizer Recognizer, cache TextCache, minChars, probePages int, logger *slog.Logger) *Acquirer {
	if logger == nil {
		logger = slog.Default()
	}
	if minChars <= 0 {
		minChars = DefaultMinTextLength
	}
	if probePages <= 0 {
		probePages = DefaultProbePages
	}
	return &Acquirer{
		direct:     direct,
		recognizer: recognizer,
		cache:      cache,
		minChars:   minChars,
		probePages: probePages,
		logger:     logger,
	}
}

// Acquire produces the raw text for one document. Both extraction paths
// failing yields empty text and ErrExtractionFailed; the caller skips the
// document rather than aborting anything.
func (a *Acquirer) Acquire(ctx context.Context, doc Document) (AcquireResult, error) {
	start := time.Now()

	text, pages, err := a.direct.DirectText(ctx, doc.Path)
	if err != nil {
		a.logger.Warn("acquire.direct.failed", "document_id", doc.ID, "error", err)
		text = ""
	}
	if a.hasUsableTextLayer(text) {
		a.logger.Debug("acquire.direct.ok", "document_id", doc.ID, "pages", pages, "bytes", len(text))
		return AcquireResult{Text: text, Pages: pages, Method: "pdf-text", Duration: time.Since(start)}, nil
	}

	if a.cache != nil {
		cached, hit, cErr := a.cache.Get(ctx, doc.ID)
		if cErr != nil {
			a.logger.Warn("acquire.cache.get_failed", "document_id", doc.ID, "error", cErr)
		} else if hit {
			a.logger.Info("acquire.cache.hit", "document_id", doc.ID, "bytes", len(cached))
			return AcquireResult{
				Text:     cached,
				Pages:    1 + strings.Count(cached, "\f"),
				Method:   "ocr-cache",
				Duration: time.Since(start),
			}, nil
		}
	}

	if a.recognizer == nil {
		a.logger.Warn("acquire.ocr.unavailable", "document_id", doc.ID)
		return AcquireResult{Duration: time.Since(start)},
			common.WrapError(common.ErrOCRUnavailable, "document has no text layer")
	}

	a.logger.Info("acquire.ocr.start", "document_id", doc.ID)
	ocrText, ocrPages, warns, err := a.recognizer.Recognize(ctx, doc.Path)
	if err != nil || strings.TrimSpace(ocrText) == "" {
		a.logger.Error("acquire.ocr.failed", "document_id", doc.ID, "error", err, "warnings", len(warns))
		return AcquireResult{Warnings: warns, Duration: time.Since(start)},
			common.WrapError(common.ErrExtractionFailed, "direct and ocr extraction both empty")
	}

	if a.cache != nil {
		if pErr := a.cache.Put(ctx, doc.ID, ocrText); pErr != nil {
			a.logger.Warn("acquire.cache.put_failed", "document_id", doc.ID, "error", pErr)
		}
	}

	a.logger.Info("acquire.ocr.ok", "document_id", doc.ID, "pages", ocrPages, "warnings", len(warns))
	return AcquireResult{
		Text:     ocrText,
		Pages:    ocrPages,
		Method:   "pdf-ocr",
		Warnings: warns,
		Duration: time.Since(start),
	}, nil
}

// hasUsableTextLayer applies the minimum-content floor to the first probe
// pages (pdftotext separates pages with form feeds).
func (a *Acquirer) hasUsableTextLayer(text string) bool {
	if text == "" {
		return false
	}
	pages := strings.Split(text, "\f")
	if len(pages) > a.probePages {
		pages = pages[:a.probePages]
	}
	probe := strings.TrimSpace(strings.Join(pages, ""))
	return len(probe) > a.minChars
}
