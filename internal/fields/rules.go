package fields

import (
	"regexp"
	"strings"
)

// Rule is one named attempt at recovering a scalar field: a pure function
// from text to an optional match. Rules run in declaration order and the
// first match wins, so each list is ordered from the most structurally
// reliable source location (labeled header fields) down to looser body-text
// patterns. The lists are data; adding or reordering a rule never touches
// control flow.
type Rule struct {
	Name  string
	Match func(text string) (string, bool)
}

// RuleSet is an ordered list of rules for one field.
type RuleSet []Rule

// Apply runs the rules in order and returns the first match along with the
// name of the rule that produced it.
func (rs RuleSet) Apply(text string) (value, rule string, ok bool) {
	for _, r := range rs {
		if v, matched := r.Match(text); matched {
			return strings.TrimSpace(v), r.Name, true
		}
	}
	return "", "", false
}

// pattern builds a Rule from a regexp, capturing the given group.
func pattern(name string, re *regexp.Regexp, group int) Rule {
	return Rule{
		Name: name,
		Match: func(text string) (string, bool) {
			m := re.FindStringSubmatch(text)
			if m == nil || len(m) <= group || m[group] == "" {
				return "", false
			}
			return m[group], true
		},
	}
}

// Uppercase classes are written out because the reports are Portuguese and
// OCR noise makes broad Unicode classes over-match.
const (
	upperPT = `A-ZÁÉÍÓÚÂÊÔÃÕÇ`
	lowerPT = `a-záéíóúâêôãõç`
)

var (
	reCourseHeader = regexp.MustCompile(`(?i)Curso\(s\)\s*/\s*Habilitação\(ões\)\s+sendo\s+avaliado\(s\)[:\s]+([` + upperPT + `][` + upperPT + lowerPT + `\s-]+?)\s*(?:Informações|$)`)
	reCourseBody   = regexp.MustCompile(`(?i)Curso\(s\)\s*/\s*Habilitação\(ões\)[^:]*?:\s*([` + upperPT + `][` + upperPT + lowerPT + `\s-]+?)\s*;\s*Grau`)

	reRegistryHeader = regexp.MustCompile(`(?i)Código\s+MEC[:\s]+(\d{6,8})`)
	reRegistryBody   = regexp.MustCompile(`(?i)Código\s+(?:e-MEC\s+)?do\s+Curso[:\s]+(\d{6,8})`)
	reRegistryLoose  = regexp.MustCompile(`\b(\d{7})\b`)

	reYearVisit = regexp.MustCompile(`(?i)Período\s+de\s+Visita[:\s]+\d{1,2}/\d{1,2}/(20\d{2})`)
	reYearBody  = regexp.MustCompile(`(?is)ocorreu\s+no\s+per[íi]odo.*?(20\d{2})`)

	reCampusHeader = regexp.MustCompile(`(?i)\d+\s*-\s*campus\s+([` + lowerPT + `\s]+?)\s*-`)
	reCampusBody   = regexp.MustCompile(`(?i)Campus\s+([` + upperPT + `][` + lowerPT + `]+(?:\s+[` + upperPT + `][` + lowerPT + `]+){0,3}),\s*situado`)

	reCityAfterCEP = regexp.MustCompile(`(?is)CEP[:\s-]*\d[\d.-]+.*?([` + upperPT + `][` + lowerPT + `]+(?:\s+[` + lowerPT + `]+)?)[\s-]+[A-Z]{2}\.`)

	reModality = regexp.MustCompile(`(?i)Grau:\s*(Licenciatura|Bacharelado|Tecnólogo)`)

	reFinalConcepts = regexp.MustCompile(`(?is)CONCEITO\s+FINAL\s+CONTÍNUO\s+CONCEITO\s+FINAL\s+FAIXA\s*([\d,.]+)\s+([\d,.]+)`)

	reDimensions = regexp.MustCompile(`(?i)Dimensão\s+(\d):\s*[^\d]*?([1-5][.,]\d{1,2}|[1-5])`)
)

// courseNameRules recovers the course name: the structured evaluation header
// first, the report body ("...; Grau:") second.
var courseNameRules = RuleSet{
	pattern("course_header", reCourseHeader, 1),
	pattern("course_body", reCourseBody, 1),
}

// registryCodeRules recovers the registry code. The loose positional rule
// only fires when both labeled forms are missing: the first standalone
// 7-digit number near the top of the document, where the identification
// table sits in the detached-value layout.
var registryCodeRules = RuleSet{
	pattern("registry_header", reRegistryHeader, 1),
	pattern("registry_body", reRegistryBody, 1),
	{
		Name: "registry_positional",
		Match: func(text string) (string, bool) {
			head := text
			if len(head) > 2000 {
				head = head[:2000]
			}
			m := reRegistryLoose.FindStringSubmatch(head)
			if m == nil {
				return "", false
			}
			return m[1], true
		},
	},
}

var evaluationYearRules = RuleSet{
	pattern("year_visit_period", reYearVisit, 1),
	pattern("year_body", reYearBody, 1),
}

var campusRules = RuleSet{
	pattern("campus_address", reCampusHeader, 1),
	pattern("campus_body", reCampusBody, 1),
}

// cityRules is only consulted when no campus rule matched; a resolved campus
// always supplies the city from the catalog instead.
var cityRules = RuleSet{
	pattern("city_after_cep", reCityAfterCEP, 1),
}

var modalityRules = RuleSet{
	pattern("modality_after_grau", reModality, 1),
}
