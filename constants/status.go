package constants

// CompletionStatus describes how much of a document's required metadata
// survived extraction and normalization.
type CompletionStatus string

const (
	// StatusComplete means every required field is non-null.
	StatusComplete CompletionStatus = "COMPLETE"
	// StatusIncomplete means the record was produced but is missing one or
	// more required fields; partial data is kept for human review.
	StatusIncomplete CompletionStatus = "INCOMPLETE"
	// StatusSkipped means no text could be obtained from the document at all.
	StatusSkipped CompletionStatus = "SKIPPED"
)

// RequiredFields is the fixed set of scalar fields that must all be present
// for a record to count as complete.
var RequiredFields = []string{
	"course_name",
	"registry_code",
	"evaluation_year",
	"modality",
	"city",
	"campus",
}
