package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold strips diacritics: NFD decomposition, removal of combining marks,
// NFC recomposition. OCR output is inconsistent about accents, so all
// catalog keys are compared in folded form.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// foldKey produces the canonical lookup key: folded, uppercased, trimmed.
func foldKey(s string) string {
	return strings.ToUpper(Fold(strings.TrimSpace(s)))
}

// titleCase renders the cleaned fallback form of an unmatched raw value.
// A fresh caser per call keeps the function safe for parallel use.
func titleCase(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(strings.ToLower(strings.TrimSpace(s)))
}
