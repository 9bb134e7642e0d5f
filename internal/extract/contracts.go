package extract

import (
	"context"
	"time"
)

// Document identifies one source report. The ID is the stable file name and
// is unique across the input set.
type Document struct {
	ID   string
	Path string
}

// AcquireResult is the raw text produced for one document, with provenance.
type AcquireResult struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "pdf-ocr" | "ocr-cache"
	Duration time.Duration
	Warnings []string
}

// TextAcquirer is stage 1: document -> raw text. Empty text with a non-nil
// error means the document must be skipped, never crashed on.
type TextAcquirer interface {
	Acquire(ctx context.Context, doc Document) (AcquireResult, error)
}

// DirectExtractor reads the PDF's embedded text layer.
type DirectExtractor interface {
	DirectText(ctx context.Context, path string) (text string, pages int, err error)
}

// Recognizer is the OCR capability: render pages, recognize text. A nil
// Recognizer models "OCR not available"; the pipeline degrades by skipping
// documents that need it.
type Recognizer interface {
	Recognize(ctx context.Context, path string) (text string, pages int, warnings []string, err error)
}

// TextCache stores OCR output keyed by document identity. It must tolerate
// being queried before population, and overwrites must be idempotent.
type TextCache interface {
	Get(ctx context.Context, documentID string) (string, bool, error)
	Put(ctx context.Context, documentID, text string) error
}
