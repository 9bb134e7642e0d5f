package entity

import (
	"strconv"
	"strings"
)

// NotApplicableLabel is the canonical spelling of the not-applicable sentinel
// used in output tables. It is a representable state distinct from an
// absent/unextracted value.
const NotApplicableLabel = "NSA"

// nsaAliases are the case-insensitive spellings accepted for the
// not-applicable sentinel during parsing.
var nsaAliases = map[string]struct{}{
	"NSA":           {},
	"N.S.A.":        {},
	"NAO SE APLICA": {},
	"NÃO SE APLICA": {},
}

// Score is one grade cell: a decimal value, the not-applicable sentinel, or
// absent. The zero value is absent.
type Score struct {
	Value float64
	NSA   bool
	Valid bool
}

// Decimal returns a present numeric score.
func Decimal(v float64) Score {
	return Score{Value: v, Valid: true}
}

// NotApplicable returns the not-applicable sentinel score.
func NotApplicable() Score {
	return Score{NSA: true, Valid: true}
}

// ParseScore converts a raw grade token to a Score. Comma and dot are both
// accepted as the fractional separator; the NSA alias set maps to the
// sentinel. Unparseable input yields the absent score, never an error.
func ParseScore(raw string) Score {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if token == "" {
		return Score{}
	}
	if _, ok := nsaAliases[token]; ok {
		return NotApplicable()
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	if err != nil {
		return Score{}
	}
	return Decimal(v)
}

// InRange reports whether the score is absent, the sentinel, or a numeric
// value within [lo, hi]. Only out-of-range numeric values fail.
func (s Score) InRange(lo, hi float64) bool {
	if !s.Valid || s.NSA {
		return true
	}
	return s.Value >= lo && s.Value <= hi
}

// String renders the score for output tables: the trimmed decimal, the NSA
// label, or the empty string when absent.
func (s Score) String() string {
	if !s.Valid {
		return ""
	}
	if s.NSA {
		return NotApplicableLabel
	}
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}

// Cell returns the value to place in a spreadsheet cell: float64, the NSA
// label, or nil when absent.
func (s Score) Cell() any {
	if !s.Valid {
		return nil
	}
	if s.NSA {
		return NotApplicableLabel
	}
	return s.Value
}

// ParseInt converts a raw numeric token to an int, tolerating comma decimals
// ("2019,0") the way scanned tables sometimes render integers.
func ParseInt(raw string) (int, bool) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return int(v), true
}
