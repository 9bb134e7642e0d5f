// Command inepscan turns a directory of course evaluation report PDFs into
// spreadsheet-ready records and justification tables.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ufpr-cpa/inep-extractor/internal/assemble"
	"github.com/ufpr-cpa/inep-extractor/internal/catalog"
	"github.com/ufpr-cpa/inep-extractor/internal/classify"
	"github.com/ufpr-cpa/inep-extractor/internal/common"
	"github.com/ufpr-cpa/inep-extractor/internal/entity"
	"github.com/ufpr-cpa/inep-extractor/internal/export"
	"github.com/ufpr-cpa/inep-extractor/internal/extract"
	"github.com/ufpr-cpa/inep-extractor/internal/fields"
	"github.com/ufpr-cpa/inep-extractor/internal/ocr"
	processor "github.com/ufpr-cpa/inep-extractor/internal/pipeline"
	"github.com/ufpr-cpa/inep-extractor/internal/segment"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	root := &cobra.Command{
		Use:           "inepscan",
		Short:         "Extract course records from INEP evaluation report PDFs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newProcessCmd(logger))

	if err := root.Execute(); err != nil {
		logger.Error("inepscan.failed", "error", err)
		os.Exit(1)
	}
}

func newProcessCmd(logger *slog.Logger) *cobra.Command {
	var (
		dir         string
		recordsOut  string
		justifOut   string
		workers     int
		noOCR       bool
		noArchive   bool
		runClassify bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process every PDF in a directory and write the XLSX outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := common.LoadConfig()
			if recordsOut != "" {
				cfg.Output.RecordsPath = recordsOut
			}
			if justifOut != "" {
				cfg.Output.JustificationsPath = justifOut
			}
			if workers > 0 {
				cfg.Workers = workers
			}
			if noOCR {
				cfg.OCR.Disabled = true
			}
			if noArchive {
				cfg.Output.VerifiedDir = ""
			}
			if cfg.Workers <= 0 {
				cfg.Workers = runtime.GOMAXPROCS(0)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, dir, runClassify, logger)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory holding the report PDFs (required)")
	cmd.Flags().StringVar(&recordsOut, "records", "", "records XLSX output path")
	cmd.Flags().StringVar(&justifOut, "justifications", "", "justifications XLSX output path")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent documents (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&noOCR, "no-ocr", false, "never escalate to OCR; skip image-only documents")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false, "leave fully extracted PDFs in place")
	cmd.Flags().BoolVar(&runClassify, "classify", false, "classify justifications through the configured model")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func run(ctx context.Context, cfg *common.Config, dir string, runClassify bool, logger *slog.Logger) error {
	cat, err := catalog.Load(logger)
	if err != nil {
		return fmt.Errorf("load catalogs: %w", err)
	}

	extractor := ocr.NewExtractor(ocr.Config{
		Pdftotext:   cfg.OCR.Pdftotext,
		Pdftoppm:    cfg.OCR.Pdftoppm,
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		DPILadder:   cfg.OCR.DPILadder,
		PageTimeout: cfg.OCR.PageTimeout,
		MaxPages:    cfg.OCR.MaxPages,
	}, logger)

	var recognizer extract.Recognizer
	var cache extract.TextCache
	if !cfg.OCR.Disabled {
		recognizer = extractor
		c, err := ocr.OpenCache(cfg.Cache.Path, logger)
		if err != nil {
			return fmt.Errorf("open ocr cache: %w", err)
		}
		defer func() {
			if cerr := c.Close(); cerr != nil {
				logger.Warn("cache.close.failed", "error", cerr)
			}
		}()
		cache = c
	}

	acquirer := extract.NewAcquirer(extractor, recognizer, cache,
		cfg.OCR.MinTextLength, cfg.OCR.ProbePages, logger)

	proc := processor.NewProcessor(
		acquirer,
		fields.NewExtractor(logger),
		segment.NewSegmenter(logger),
		assemble.NewAssembler(cat, logger),
		logger,
	)
	proc.DebugDir = cfg.Output.DebugTextDir
	if cfg.Output.VerifiedDir != "" {
		proc.Archiver = assemble.NewDirArchiver(cfg.Output.VerifiedDir, logger)
	}

	docs, err := processor.DiscoverDocuments(dir)
	if err != nil {
		return fmt.Errorf("discover documents: %w", err)
	}
	if len(docs) == 0 {
		logger.Warn("inepscan.no_documents", "dir", dir)
		return nil
	}
	logger.Info("inepscan.start", "dir", dir, "documents", len(docs), "workers", cfg.Workers)

	batch := processor.NewBatch(proc, cfg.Workers, logger)
	results, summary, err := batch.Run(ctx, docs)
	if err != nil {
		return err
	}

	records := make([]entity.CourseRecord, 0, len(results))
	recordsByDoc := make(map[string]entity.CourseRecord, len(results))
	entriesByDoc := make(map[string][]entity.IndicatorEntry, len(results))
	var entries []entity.IndicatorEntry
	for _, r := range results {
		if r.Status == "" || r.Err != nil {
			continue
		}
		records = append(records, r.Record)
		recordsByDoc[r.Record.DocumentID] = r.Record
		entriesByDoc[r.Record.DocumentID] = r.Entries
		entries = append(entries, r.Entries...)
	}

	svc := export.NewService(logger)
	if err := svc.WriteRecordsXLSX(cfg.Output.RecordsPath, records, entriesByDoc); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	if err := svc.WriteJustificationsXLSX(cfg.Output.JustificationsPath, entries, recordsByDoc); err != nil {
		return fmt.Errorf("write justifications: %w", err)
	}

	if runClassify {
		if err := classifyEntries(ctx, cfg, svc, entries, recordsByDoc, logger); err != nil {
			return err
		}
	}

	logger.Info("inepscan.done",
		"processed", summary.Processed,
		"complete", summary.Complete,
		"incomplete", summary.Incomplete,
		"skipped", summary.Skipped,
		"indicators", summary.Indicators,
	)
	for id, missing := range summary.MissingByDocument {
		logger.Info("inepscan.incomplete_record", "document_id", id, "missing", missing)
	}
	return nil
}

// classifyEntries runs the optional classification stage sequentially: the
// provider is the bottleneck, and strict request ordering keeps the output
// stable.
func classifyEntries(ctx context.Context, cfg *common.Config, svc *export.Service, entries []entity.IndicatorEntry, recordsByDoc map[string]entity.CourseRecord, logger *slog.Logger) error {
	if cfg.Classifier.APIKey == "" {
		logger.Warn("inepscan.classify.disabled", "reason", "no api key configured")
		return nil
	}

	client := classify.NewClient(classify.Config{
		APIKey:      cfg.Classifier.APIKey,
		BaseURL:     cfg.Classifier.BaseURL,
		Model:       cfg.Classifier.Model,
		Temperature: cfg.Classifier.Temperature,
		Timeout:     cfg.Classifier.Timeout,
	}, logger)

	rows := make([]export.ClassifiedRow, 0, len(entries))
	for _, e := range entries {
		if e.Justification == "" {
			continue
		}
		req := classify.Request{
			DocumentID:    e.DocumentID,
			IndicatorID:   e.IndicatorID,
			Grade:         e.Grade.String(),
			Justification: e.Justification,
		}
		if r, ok := recordsByDoc[e.DocumentID]; ok {
			req.CourseName = r.CourseName
		}

		result, _, err := client.Classify(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("inepscan.classify.failed",
				"document_id", e.DocumentID, "indicator_id", e.IndicatorID, "error", err)
			continue
		}
		rows = append(rows, export.ClassifiedRow{
			DocumentID:  e.DocumentID,
			IndicatorID: e.IndicatorID,
			Category:    result.Category,
			Tags:        result.Tags,
			Weaknesses:  result.Weaknesses,
		})
	}

	out := filepath.Join(filepath.Dir(cfg.Output.JustificationsPath), "classifications.xlsx")
	return svc.WriteClassificationsXLSX(out, rows)
}
