package classify

import (
	"fmt"
	"strings"
)

const systemPrompt = `Você é um analista de avaliação institucional. Receberá a ` +
	`justificativa escrita por uma comissão de avaliação do INEP para um ` +
	`indicador de curso de graduação. Classifique o tema principal da ` +
	`justificativa, liste até oito tags curtas e extraia os pontos negativos ` +
	`explicitamente mencionados. Responda APENAS com um objeto JSON com as ` +
	`chaves "categoria", "tags" e "pontos_negativos".`

func buildUserPrompt(req Request) string {
	var b strings.Builder
	if req.CourseName != "" {
		fmt.Fprintf(&b, "Curso: %s\n", req.CourseName)
	}
	fmt.Fprintf(&b, "Indicador: %s\n", req.IndicatorID)
	if req.Grade != "" {
		fmt.Fprintf(&b, "Conceito atribuído: %s\n", req.Grade)
	}
	fmt.Fprintf(&b, "Categorias permitidas: %s\n\n", strings.Join(SuggestedCategories, "; "))
	fmt.Fprintf(&b, "Justificativa:\n%s\n", req.Justification)
	return b.String()
}
