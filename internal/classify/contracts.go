// Package classify asks an OpenAI-compatible model to categorize indicator
// justifications. It is an optional enrichment stage: the pipeline produces
// its tables whether or not a classifier is configured.
package classify

import "context"

// Request carries one justification plus the record context the model needs.
type Request struct {
	DocumentID    string
	CourseName    string
	IndicatorID   string
	Grade         string
	Justification string
}

// Result is the normalized shape we want back from the model. Field names
// stay in Portuguese to match the corpus the prompt is written in.
type Result struct {
	Category   string   `json:"categoria"`
	Tags       []string `json:"tags"`
	Weaknesses []string `json:"pontos_negativos"`
}

// Classifier is the interface the reporting layer depends on.
type Classifier interface {
	Classify(ctx context.Context, req Request) (Result, []byte /*rawJSON*/, error)
}

// SuggestedCategories constrains the model's category answer to the themes
// evaluation committees actually write about.
var SuggestedCategories = []string{
	"Corpo docente",
	"Infraestrutura",
	"Organização didático-pedagógica",
	"Biblioteca e acervo",
	"Laboratórios",
	"Gestão e coordenação",
	"Avaliação e acompanhamento",
	"Outro",
}
