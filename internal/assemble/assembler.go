// Package assemble joins extracted fields and indicator entries into
// normalized records, and decides per-document completeness.
package assemble

import (
	"log/slog"

	"github.com/ufpr-cpa/inep-extractor/constants"
	"github.com/ufpr-cpa/inep-extractor/internal/catalog"
	"github.com/ufpr-cpa/inep-extractor/internal/entity"
)

// Result is the per-document outcome: the normalized record, its entries
// stamped with the document id, and the completeness verdict.
type Result struct {
	Record          entity.CourseRecord
	Entries         []entity.IndicatorEntry
	Status          constants.CompletionStatus
	MissingFields   []string
	ArchiveEligible bool
}

type Assembler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func NewAssembler(cat *catalog.Catalog, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{catalog: cat, logger: logger}
}

// Assemble normalizes raw fields through the catalogs, stamps the document id
// onto the indicator entries, and checks the required-field set. City is
// preferred from the campus table when the campus resolved; the independently
// extracted city only fills the gap when it did not.
func (a *Assembler) Assemble(documentID string, fields entity.CourseFields, entries []entity.IndicatorEntry) Result {
	record := entity.CourseRecord{
		DocumentID:      documentID,
		RegistryCode:    fields.RegistryCode,
		EvaluationYear:  fields.EvaluationYear,
		DimensionScores: fields.DimensionScores,
		FinalContinuous: fields.FinalContinuous,
		FinalBand:       fields.FinalBand,
	}

	if fields.CourseName != "" {
		record.CourseName = a.catalog.NormalizeCourse(fields.CourseName)
	}

	campus, resolved := a.catalog.NormalizeCampus(fields.Campus)
	record.Campus = campus
	if resolved {
		if city, ok := a.catalog.CityForCampus(campus); ok {
			record.City = city
		}
	}
	if record.City == "" && fields.City != "" {
		record.City = catalog.NormalizeCity(fields.City)
	}

	if fields.Modality != "" {
		// A modality outside the enum still counts: the cleaned raw value
		// passes through, with a quality warning.
		modality, ok := catalog.NormalizeModality(fields.Modality)
		record.Modality = modality
		if !ok {
			a.logger.Warn("assemble.modality.unrecognized",
				"document_id", documentID, "raw", fields.Modality)
		}
	}

	stamped := make([]entity.IndicatorEntry, len(entries))
	for i, e := range entries {
		e.DocumentID = documentID
		stamped[i] = e
	}

	missing := missingFields(record)
	status := constants.StatusComplete
	if len(missing) > 0 {
		status = constants.StatusIncomplete
		a.logger.Info("assemble.record.incomplete",
			"document_id", documentID, "missing", missing)
	}

	return Result{
		Record:          record,
		Entries:         stamped,
		Status:          status,
		MissingFields:   missing,
		ArchiveEligible: status == constants.StatusComplete,
	}
}

// missingFields reports which required fields are absent, in the canonical
// field order.
func missingFields(r entity.CourseRecord) []string {
	present := map[string]bool{
		"course_name":     r.CourseName != "",
		"registry_code":   r.RegistryCode != nil,
		"evaluation_year": r.EvaluationYear != nil,
		"modality":        r.Modality != "",
		"city":            r.City != "",
		"campus":          r.Campus != "",
	}

	var missing []string
	for _, field := range constants.RequiredFields {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	return missing
}
