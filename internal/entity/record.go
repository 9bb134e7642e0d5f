package entity

import "github.com/ufpr-cpa/inep-extractor/constants"

// CourseFields is the raw-but-validated scalar metadata recovered from one
// document's text by the field extractor. Strings are as matched (trimmed),
// prior to catalog normalization; absent fields are empty/nil.
type CourseFields struct {
	CourseName      string
	RegistryCode    *int
	EvaluationYear  *int
	Modality        string
	City            string
	Campus          string
	DimensionScores map[int]Score
	FinalContinuous Score
	FinalBand       *int
}

// CourseRecord is the normalized structured metadata for one document.
type CourseRecord struct {
	DocumentID      string
	CourseName      string
	RegistryCode    *int
	EvaluationYear  *int
	Modality        constants.Modality
	City            string
	Campus          string
	DimensionScores map[int]Score
	FinalContinuous Score
	FinalBand       *int
}

// IndicatorEntry is one justification record. (DocumentID, IndicatorID) is a
// key: at most one entry per indicator per document.
type IndicatorEntry struct {
	DocumentID    string
	IndicatorID   string
	Grade         Score
	Justification string
}
