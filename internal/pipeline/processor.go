// Package processor coordinates acquisition, field extraction, indicator
// segmentation and assembly for single documents and for batches.
package processor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ufpr-cpa/inep-extractor/constants"
	"github.com/ufpr-cpa/inep-extractor/internal/assemble"
	"github.com/ufpr-cpa/inep-extractor/internal/common"
	"github.com/ufpr-cpa/inep-extractor/internal/entity"
	"github.com/ufpr-cpa/inep-extractor/internal/extract"
	"github.com/ufpr-cpa/inep-extractor/internal/fields"
	"github.com/ufpr-cpa/inep-extractor/internal/segment"
)

// DocumentResult is everything one document produced, or the reason it did
// not: a skipped document still yields a result row so batch accounting can
// report it.
type DocumentResult struct {
	Document      extract.Document
	Record        entity.CourseRecord
	Entries       []entity.IndicatorEntry
	Status        constants.CompletionStatus
	MissingFields []string
	Method        string
	Err           error
}

// Processor runs the per-document stages in order. Fields and Segmenter are
// pure; the acquirer and archiver do the I/O.
type Processor struct {
	Acquirer  extract.TextAcquirer
	Fields    *fields.Extractor
	Segmenter *segment.Segmenter
	Assembler *assemble.Assembler
	Archiver  assemble.Archiver
	DebugDir  string
	Logger    *slog.Logger
}

func NewProcessor(acq extract.TextAcquirer, fx *fields.Extractor, seg *segment.Segmenter, asm *assemble.Assembler, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Acquirer:  acq,
		Fields:    fx,
		Segmenter: seg,
		Assembler: asm,
		Logger:    logger,
	}
}

// Process runs one document end to end. Acquisition failure skips the
// document; everything downstream is infallible and always yields a record,
// complete or not.
func (p *Processor) Process(ctx context.Context, doc extract.Document) DocumentResult {
	jobID := uuid.New()
	log := p.Logger.With("job_id", jobID, "document_id", doc.ID)

	acquired, err := p.Acquirer.Acquire(ctx, doc)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrOCRUnavailable):
			log.Warn("processor.acquire.ocr_unavailable", "err", err)
		default:
			log.Error("processor.acquire.failed", "err", err)
		}
		return DocumentResult{
			Document: doc,
			Status:   constants.StatusSkipped,
			Err:      err,
		}
	}
	log.Info("processor.acquire.ok",
		"method", acquired.Method,
		"pages", acquired.Pages,
		"chars", len(acquired.Text),
		"duration", acquired.Duration,
	)
	p.dumpText(doc, acquired.Text, log)

	courseFields := p.Fields.Extract(doc.ID, acquired.Text)
	entries := p.Segmenter.Segment(doc.ID, acquired.Text)
	log.Info("processor.extract.ok", "indicators", len(entries))

	result := p.Assembler.Assemble(doc.ID, courseFields, entries)

	if result.ArchiveEligible && p.Archiver != nil {
		if err := p.Archiver.Archive(doc.Path); err != nil {
			log.Warn("processor.archive.failed", "err", err)
		}
	}

	return DocumentResult{
		Document:      doc,
		Record:        result.Record,
		Entries:       result.Entries,
		Status:        result.Status,
		MissingFields: result.MissingFields,
		Method:        acquired.Method,
	}
}

// dumpText writes the acquired text next to the outputs for regex debugging.
// Failures are logged and ignored; the dump is a convenience, not a stage.
func (p *Processor) dumpText(doc extract.Document, text string, log *slog.Logger) {
	if p.DebugDir == "" {
		return
	}
	if err := os.MkdirAll(p.DebugDir, 0o755); err != nil {
		log.Warn("processor.dump.failed", "err", err)
		return
	}
	name := doc.ID + ".txt"
	if err := os.WriteFile(filepath.Join(p.DebugDir, name), []byte(text), 0o644); err != nil {
		log.Warn("processor.dump.failed", "err", err)
	}
}
