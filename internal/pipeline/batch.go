package processor

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ufpr-cpa/inep-extractor/constants"
	"github.com/ufpr-cpa/inep-extractor/internal/extract"
)

// Summary aggregates one batch run. MissingByDocument only lists documents
// that produced an incomplete record.
type Summary struct {
	Processed         int
	Complete          int
	Incomplete        int
	Skipped           int
	Indicators        int
	MissingByDocument map[string][]string
}

// Batch fans documents out over a bounded worker pool.
type Batch struct {
	Processor *Processor
	Workers   int
	Logger    *slog.Logger
}

func NewBatch(p *Processor, workers int, logger *slog.Logger) *Batch {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{Processor: p, Workers: workers, Logger: logger}
}

// Run processes every document, bounded by the worker limit, and returns
// results ordered by document id regardless of completion order. Individual
// document failures are recorded in their result, never propagated; only
// context cancellation stops the batch.
func (b *Batch) Run(ctx context.Context, docs []extract.Document) ([]DocumentResult, Summary, error) {
	runID := uuid.New()
	b.Logger.Info("batch.run.start", "run_id", runID, "documents", len(docs), "workers", b.Workers)

	results := make([]DocumentResult, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Workers)
	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = b.Processor.Process(ctx, doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Summary{}, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Document.ID < results[j].Document.ID
	})

	summary := summarize(results)
	b.Logger.Info("batch.run.ok",
		"run_id", runID,
		"processed", summary.Processed,
		"complete", summary.Complete,
		"incomplete", summary.Incomplete,
		"skipped", summary.Skipped,
		"indicators", summary.Indicators,
	)
	return results, summary, nil
}

func summarize(results []DocumentResult) Summary {
	s := Summary{MissingByDocument: make(map[string][]string)}
	for _, r := range results {
		s.Processed++
		switch r.Status {
		case constants.StatusComplete:
			s.Complete++
		case constants.StatusIncomplete:
			s.Incomplete++
			s.MissingByDocument[r.Document.ID] = r.MissingFields
		case constants.StatusSkipped:
			s.Skipped++
		}
		s.Indicators += len(r.Entries)
	}
	return s
}

// DiscoverDocuments lists the PDF files directly under dir, sorted by name.
// The file name doubles as the document id.
func DiscoverDocuments(dir string) ([]extract.Document, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var docs []extract.Document
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		ext := constants.NormalizeExt(filepath.Ext(de.Name()))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			continue
		}
		docs = append(docs, extract.Document{
			ID:   strings.TrimSuffix(de.Name(), filepath.Ext(de.Name())),
			Path: filepath.Join(dir, de.Name()),
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}
