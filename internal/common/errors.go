package common

import (
	"errors"
	"fmt"
)

// Sentinel errors for the extraction pipeline. These are recovered at the
// smallest possible granularity (field, indicator entry or page); only
// ErrExtractionFailed propagates to the per-document level, and nothing ever
// aborts the batch.
var (
	// ErrExtractionFailed means no text could be obtained from a document,
	// neither from the text layer nor from OCR. The document is skipped.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrOCRUnavailable means the OCR capability is not configured or its
	// backend is missing; documents that need OCR are skipped.
	ErrOCRUnavailable = errors.New("ocr unavailable")

	// ErrValidationRejected means a matched value failed range or shape
	// validation. The field becomes null; logged distinctly for auditing.
	ErrValidationRejected = errors.New("validation rejected")

	// ErrIndicatorOutOfRange means a segmented block's indicator id is not
	// in the known enumerated set; the entry is dropped.
	ErrIndicatorOutOfRange = errors.New("indicator id out of range")

	// ErrPageRender means a page could not be rasterized at any resolution.
	ErrPageRender = errors.New("page render failed")

	// ErrPageTimeout means recognition of a page exceeded its time budget;
	// the page contributes no text and the document continues.
	ErrPageTimeout = errors.New("page recognition timed out")
)

// WrapError annotates err with a message, preserving the chain for errors.Is.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
