package constants

import "strings"

// Modality is the canonical degree modality of an evaluated course.
type Modality string

const (
	Licenciatura Modality = "Licenciatura"
	Bacharelado  Modality = "Bacharelado"
	Tecnologo    Modality = "Tecnólogo"
)

var allModalities = []Modality{
	Licenciatura,
	Bacharelado,
	Tecnologo,
}

// CanonicalizeModality maps a raw extracted modality to the canonical enum.
// Matching is case-insensitive and tolerates the unaccented spellings that
// show up in OCR output. A failed match returns the trimmed input and false;
// callers should treat that as an extraction quality warning, not an error.
func CanonicalizeModality(input string) (Modality, bool) {
	cleaned := strings.TrimSpace(input)
	if cleaned == "" {
		return "", false
	}

	normalized := strings.ToUpper(cleaned)

	synonyms := map[string]Modality{
		"LICENCIATURA": Licenciatura,
		"BACHARELADO":  Bacharelado,
		"TECNÓLOGO":    Tecnologo,
		"TECNOLOGO":    Tecnologo,
	}
	if m, ok := synonyms[normalized]; ok {
		return m, true
	}

	for _, m := range allModalities {
		if strings.EqualFold(cleaned, string(m)) {
			return m, true
		}
	}

	return Modality(cleaned), false
}
