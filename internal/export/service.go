// Package export writes the extracted records and justifications to XLSX
// workbooks.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ufpr-cpa/inep-extractor/constants"
	"github.com/ufpr-cpa/inep-extractor/internal/entity"
)

// Service produces the two output workbooks: one wide table of course
// records with grade columns, and one long table of justification texts.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteRecordsXLSX writes one row per record: scalar metadata, one grade
// column per indicator in catalog order, the dimension scores and the final
// concepts. Absent values stay as empty cells; the not-applicable sentinel is
// written as its label.
func (s *Service) WriteRecordsXLSX(path string, records []entity.CourseRecord, entriesByDoc map[string][]entity.IndicatorEntry) error {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Records"
	if err := prepareSheet(f, sheet); err != nil {
		return err
	}

	indicators := constants.AllIndicators()
	headers := []string{
		"document_id",
		"course_name",
		"registry_code",
		"evaluation_year",
		"modality",
		"city",
		"campus",
	}
	headers = append(headers, indicators...)
	headers = append(headers,
		"dimension_1", "dimension_2", "dimension_3",
		"final_continuous_score", "final_band_score",
	)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range records {
		write := func(col int, v any) {
			if v == nil {
				return
			}
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.DocumentID)
		write(2, r.CourseName)
		if r.RegistryCode != nil {
			write(3, *r.RegistryCode)
		}
		if r.EvaluationYear != nil {
			write(4, *r.EvaluationYear)
		}
		write(5, string(r.Modality))
		write(6, r.City)
		write(7, r.Campus)

		grades := make(map[string]entity.Score, len(entriesByDoc[r.DocumentID]))
		for _, e := range entriesByDoc[r.DocumentID] {
			grades[e.IndicatorID] = e.Grade
		}
		col := 8
		for _, id := range indicators {
			write(col, grades[id].Cell())
			col++
		}
		for dim := 1; dim <= 3; dim++ {
			write(col, r.DimensionScores[dim].Cell())
			col++
		}
		write(col, r.FinalContinuous.Cell())
		if r.FinalBand != nil {
			write(col+1, *r.FinalBand)
		}

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 32) // document id
	_ = f.SetColWidth(sheet, "B", "B", 40) // course
	_ = f.SetColWidth(sheet, "E", "G", 22) // modality, city, campus

	if err := save(f, path); err != nil {
		return err
	}
	s.logger.Info("export.xlsx.ok",
		"path", path,
		"rows", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// WriteJustificationsXLSX writes one row per (document, indicator)
// justification. Course name and registry code are denormalized onto each
// row so the table is filterable on its own.
func (s *Service) WriteJustificationsXLSX(path string, entries []entity.IndicatorEntry, recordsByDoc map[string]entity.CourseRecord) error {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Justifications"
	if err := prepareSheet(f, sheet); err != nil {
		return err
	}

	headers := []string{
		"document_id",
		"course_name",
		"registry_code",
		"indicator_id",
		"grade",
		"justification_text",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range entries {
		write := func(col int, v any) {
			if v == nil {
				return
			}
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, e.DocumentID)
		if r, ok := recordsByDoc[e.DocumentID]; ok {
			write(2, r.CourseName)
			if r.RegistryCode != nil {
				write(3, *r.RegistryCode)
			}
		}
		write(4, e.IndicatorID)
		write(5, e.Grade.Cell())
		write(6, e.Justification)

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", "B", 40)
	_ = f.SetColWidth(sheet, "F", "F", 100)

	if err := save(f, path); err != nil {
		return err
	}
	s.logger.Info("export.xlsx.ok",
		"path", path,
		"rows", len(entries),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ClassifiedRow is one classified justification ready for output.
type ClassifiedRow struct {
	DocumentID  string
	IndicatorID string
	Category    string
	Tags        []string
	Weaknesses  []string
}

// WriteClassificationsXLSX writes the optional model-assigned categories, one
// row per classified justification. List columns are semicolon-joined.
func (s *Service) WriteClassificationsXLSX(path string, rows []ClassifiedRow) error {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Classifications"
	if err := prepareSheet(f, sheet); err != nil {
		return err
	}

	headers := []string{"document_id", "indicator_id", "categoria", "tags", "pontos_negativos"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, r := range rows {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.DocumentID)
		write(2, r.IndicatorID)
		write(3, r.Category)
		write(4, strings.Join(r.Tags, "; "))
		write(5, strings.Join(r.Weaknesses, "; "))
	}

	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "C", "E", 40)

	if err := save(f, path); err != nil {
		return err
	}
	s.logger.Info("export.xlsx.ok",
		"path", path,
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func prepareSheet(f *excelize.File, sheet string) error {
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if defIdx, _ := f.GetSheetIndex("Sheet1"); defIdx != -1 {
			_ = f.DeleteSheet("Sheet1")
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	return nil
}

func save(f *excelize.File, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
