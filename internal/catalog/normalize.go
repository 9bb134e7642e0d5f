package catalog

import (
	"regexp"
	"strings"

	"github.com/ufpr-cpa/inep-extractor/constants"
)

// minContainmentLen is the shortest string allowed to match by substring
// containment; shorter strings collide too easily.
const minContainmentLen = 5

var (
	modalityPrefix = regexp.MustCompile(`(?i)^(BACHARELADO|LICENCIATURA|TECNÓLOGO|TECNOLOGO)\s+(EM\s+)?`)
	cityPrep       = regexp.MustCompile(`(?i)^(de|da|do|dos|das)\s+`)
)

// NormalizeCourse maps a raw course name to the official catalog name.
// Matching order: exact folded lookup, then bidirectional substring
// containment (both sides at least 5 characters), then the title-cased raw
// input. Never fails.
func (c *Catalog) NormalizeCourse(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}

	key := foldKey(modalityPrefix.ReplaceAllString(cleaned, ""))
	if official, ok := c.courseByKey[key]; ok {
		return official
	}

	if len(key) >= minContainmentLen {
		for _, variant := range c.courseKeys {
			if len(variant) < minContainmentLen {
				continue
			}
			if strings.Contains(key, variant) || strings.Contains(variant, key) {
				return c.courseByKey[variant]
			}
		}
	}

	return titleCase(cleaned)
}

// NormalizeCampus maps a raw campus spelling to the official campus name.
// The second return reports whether the campus resolved to a catalog entry;
// on false the cleaned original is passed through.
func (c *Catalog) NormalizeCampus(raw string) (string, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", false
	}

	key := foldKey(cleaned)
	if official, ok := c.campusByKey[key]; ok {
		return official, true
	}

	if len(key) >= minContainmentLen {
		for _, variant := range c.campusKeys {
			if len(variant) < minContainmentLen {
				continue
			}
			if strings.Contains(key, variant) || strings.Contains(variant, key) {
				return c.campusByKey[variant], true
			}
		}
	}

	return cleaned, false
}

// CityForCampus returns the city for an official campus name. City is only
// ever derived from this table when campus resolution succeeded.
func (c *Catalog) CityForCampus(campus string) (string, bool) {
	city, ok := c.cityByCampus[campus]
	return city, ok
}

// NormalizeCity cleans an independently extracted city name: leading
// prepositions dropped, title-cased.
func NormalizeCity(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}
	cleaned = cityPrep.ReplaceAllString(cleaned, "")
	return titleCase(cleaned)
}

// NormalizeModality maps a raw modality onto the three-value enum. A non-enum
// result (ok false) is an extraction quality warning, not an error.
func NormalizeModality(raw string) (constants.Modality, bool) {
	return constants.CanonicalizeModality(raw)
}
