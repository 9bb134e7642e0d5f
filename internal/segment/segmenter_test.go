package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufpr-cpa/inep-extractor/internal/entity"
)

const sampleIndicators = `
Dimensão 1: ORGANIZAÇÃO DIDÁTICO-PEDAGÓGICA

1.1. Políticas institucionais no âmbito do curso. 4
Justificativa para conceito 4: As políticas institucionais de ensino,
extensão e pesquisa estão implantadas no âmbito do curso.

1.2. Objetivos do curso. NSA
Justificativa para conceito NSA: Não se aplica ao presente instrumento.

1.3. Perfil profissional do egresso.
O perfil consta no PPC, conforme verificado in loco, com nota 3 atribuída. 3
Justificativa para conceito 3: O perfil profissional expressa as
competências do egresso.
`

func TestSegmentSample(t *testing.T) {
	s := NewSegmenter(nil)
	entries := s.Segment("doc-1", sampleIndicators)
	require.Len(t, entries, 3)

	assert.Equal(t, "1.1", entries[0].IndicatorID)
	assert.Equal(t, entity.Decimal(4), entries[0].Grade)
	assert.Contains(t, entries[0].Justification, "As políticas institucionais de ensino")
	assert.NotContains(t, entries[0].Justification, "\n", "justification must be whitespace-collapsed")

	assert.Equal(t, "1.2", entries[1].IndicatorID)
	assert.Equal(t, entity.NotApplicable(), entries[1].Grade)

	// the grade token is the one immediately before the marker, not an
	// earlier digit inside the descriptive text
	assert.Equal(t, "1.3", entries[2].IndicatorID)
	assert.Equal(t, entity.Decimal(3), entries[2].Grade)
}

func TestSegmentDropsUnknownIndicator(t *testing.T) {
	s := NewSegmenter(nil)
	text := `
9.9. Indicador inexistente. 5
Justificativa para conceito 5: Texto qualquer.

2.1. Núcleo Docente Estruturante. 5
Justificativa para conceito 5: O NDE atua no curso.
`
	entries := s.Segment("doc-2", text)
	require.Len(t, entries, 1)
	assert.Equal(t, "2.1", entries[0].IndicatorID)
}

func TestSegmentDuplicateKeepsFirst(t *testing.T) {
	s := NewSegmenter(nil)
	text := `
3.1. Gabinetes de trabalho. 2
Justificativa para conceito 2: Primeira ocorrência.

3.1. Gabinetes de trabalho. 5
Justificativa para conceito 5: Segunda ocorrência.
`
	entries := s.Segment("doc-3", text)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.Decimal(2), entries[0].Grade)
	assert.Contains(t, entries[0].Justification, "Primeira ocorrência")
}

func TestSegmentBlockWithoutMarkerDropped(t *testing.T) {
	s := NewSegmenter(nil)
	text := `
1.4. Estrutura curricular. 3
Texto solto sem o marcador esperado.
`
	entries := s.Segment("doc-4", text)
	assert.Empty(t, entries)
}

func TestSegmentGradeInsideMarkerPhrase(t *testing.T) {
	// older template generations report the grade only inside the marker
	// phrase, never between the header and the marker
	s := NewSegmenter(nil)
	text := `
1.1. Contexto educacional.
Justificativa para conceito 4: O PPC contempla as demandas da região.

1.2. Políticas institucionais no âmbito do curso.
Justificativa para conceito NSA: Não se aplica a este instrumento.
`
	entries := s.Segment("doc-8", text)
	require.Len(t, entries, 2)

	assert.Equal(t, entity.Decimal(4), entries[0].Grade)
	assert.Equal(t, "O PPC contempla as demandas da região.", entries[0].Justification)

	assert.Equal(t, entity.NotApplicable(), entries[1].Grade)
}

func TestSegmentAdjacentTokenBeatsMarkerToken(t *testing.T) {
	s := NewSegmenter(nil)
	text := `
2.1. Núcleo Docente Estruturante. 3
Justificativa para conceito 4: Texto com os dois conceitos presentes.
`
	entries := s.Segment("doc-9", text)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.Decimal(3), entries[0].Grade)
}

func TestSegmentMissingGradeKeepsJustification(t *testing.T) {
	s := NewSegmenter(nil)
	text := `
2.2. Atuação do coordenador.
Justificativa para conceito 2.2: O coordenador atende à demanda do curso.
`
	entries := s.Segment("doc-5", text)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Grade.Valid, "absent grade stays absent, never zero")
	assert.Equal(t, "O coordenador atende à demanda do curso.", entries[0].Justification)
}

func TestSegmentEmptyText(t *testing.T) {
	s := NewSegmenter(nil)
	assert.Empty(t, s.Segment("doc-6", ""))
	assert.Empty(t, s.Segment("doc-7", "texto corrido sem indicadores"))
}
