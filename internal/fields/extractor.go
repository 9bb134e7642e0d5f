// Package fields recovers the scalar course metadata from raw report text by
// running ordered pattern-rule lists per field. A field whose rules all miss
// is null, never an error; a matched value that fails validation is logged
// and discarded to null.
package fields

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/ufpr-cpa/inep-extractor/internal/entity"
)

// courseNameDenylist holds structural/noise terms whose presence means a
// course-name pattern matched the wrong section of the report.
var courseNameDenylist = []string{
	"informações",
	"comissão",
	"avaliação",
	"regulação",
	"docentes",
	"categorias",
	"processo seletivo",
	"vestibular",
	"prof",
	"dra",
	"questões",
	"atendimento",
	"regime",
	"lei",
	"decreto",
	"ciências jurídicas",
}

var (
	reWhitespace = regexp.MustCompile(`\s+`)
	reAllDigits  = regexp.MustCompile(`^\d+$`)
	reHasUpper   = regexp.MustCompile(`[` + upperPT + `]`)
)

// CollapseWhitespace produces the normalized copy of the text that the
// pattern rules run against: every whitespace run becomes a single space.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(text, " "))
}

type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract recovers all scalar fields from the document text. documentID is
// only used for logging.
func (e *Extractor) Extract(documentID, text string) entity.CourseFields {
	clean := CollapseWhitespace(text)
	f := entity.CourseFields{DimensionScores: make(map[int]entity.Score, 3)}

	if raw, rule, ok := courseNameRules.Apply(clean); ok {
		if reason, valid := validateCourseName(raw); valid {
			f.CourseName = raw
		} else {
			e.logger.Warn("fields.course_name.validation_rejected",
				"document_id", documentID, "rule", rule, "reason", reason, "value", truncateValue(raw))
		}
	}

	if raw, rule, ok := registryCodeRules.Apply(clean); ok {
		if n, parsed := entity.ParseInt(raw); parsed && n >= 100000 && n <= 99999999 {
			f.RegistryCode = &n
		} else {
			e.logger.Warn("fields.registry_code.validation_rejected",
				"document_id", documentID, "rule", rule, "value", raw)
		}
	}

	if raw, rule, ok := evaluationYearRules.Apply(clean); ok {
		if y, parsed := entity.ParseInt(raw); parsed && y >= 2000 && y <= 2099 {
			f.EvaluationYear = &y
		} else {
			e.logger.Warn("fields.evaluation_year.validation_rejected",
				"document_id", documentID, "rule", rule, "value", raw)
		}
	}

	if raw, _, ok := campusRules.Apply(clean); ok {
		f.Campus = raw
	} else if raw, _, ok := cityRules.Apply(clean); ok {
		// city is extracted independently only when no campus was found
		f.City = raw
	}

	if raw, _, ok := modalityRules.Apply(clean); ok {
		f.Modality = raw
	}

	e.extractDimensions(documentID, clean, &f)
	e.extractFinalConcepts(documentID, clean, &f)

	return f
}

// extractDimensions pulls the three dimension-level scores; values outside
// [1.0, 5.0] are rejected to null.
func (e *Extractor) extractDimensions(documentID, clean string, f *entity.CourseFields) {
	for _, m := range reDimensions.FindAllStringSubmatch(clean, -1) {
		dim, ok := entity.ParseInt(m[1])
		if !ok || dim < 1 || dim > 3 {
			continue
		}
		score := entity.ParseScore(m[2])
		if !score.Valid {
			continue
		}
		if !score.InRange(1.0, 5.0) {
			e.logger.Warn("fields.dimension_score.validation_rejected",
				"document_id", documentID, "dimension", dim, "value", m[2])
			continue
		}
		if _, seen := f.DimensionScores[dim]; !seen {
			f.DimensionScores[dim] = score
		}
	}
}

// extractFinalConcepts pulls the continuous/band score pair from the final
// concepts table.
func (e *Extractor) extractFinalConcepts(documentID, clean string, f *entity.CourseFields) {
	m := reFinalConcepts.FindStringSubmatch(clean)
	if m == nil {
		return
	}
	f.FinalContinuous = entity.ParseScore(m[1])
	if band, ok := entity.ParseInt(m[2]); ok {
		if band >= 1 && band <= 5 {
			f.FinalBand = &band
		} else {
			e.logger.Warn("fields.final_band.validation_rejected",
				"document_id", documentID, "value", m[2])
		}
	}
}

// validateCourseName applies the shape checks that keep mismatched sections
// out of the course-name field. Returns a rejection reason for audit logs.
func validateCourseName(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	if len([]rune(name)) < 3 {
		return "too_short", false
	}
	if len([]rune(name)) > 80 {
		return "too_long", false
	}
	if reAllDigits.MatchString(name) {
		return "numeric_only", false
	}
	if !reHasUpper.MatchString(name) {
		return "no_uppercase", false
	}
	lowered := strings.ToLower(name)
	for _, term := range courseNameDenylist {
		if strings.Contains(lowered, term) {
			return "denylist:" + term, false
		}
	}
	return "", true
}

func truncateValue(s string) string {
	if len(s) <= 120 {
		return s
	}
	return s[:120] + "..."
}
