package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufpr-cpa/inep-extractor/internal/entity"
)

const sampleReport = `
RELATÓRIO DE AVALIAÇÃO
Informações gerais da avaliação:
Código MEC: 1234567
Curso(s) / Habilitação(ões) sendo avaliado(s): MEDICINA VETERINÁRIA
Informações da comissão:
Período de Visita: 12/05/2019 a 15/05/2019
3 - Campus Palotina - Rua Pioneiro, 2153
CEP: 85950-000 Jardim Dallas Palotina - PR.
Grau: Bacharelado

Dimensão 1: Organização Didático-Pedagógica - Conceito 3,67
Dimensão 2: Corpo Docente e Tutorial - Conceito 4,20
Dimensão 3: Infraestrutura - Conceito 3,00

CONCEITO FINAL CONTÍNUO CONCEITO FINAL FAIXA
3,86 4
`

func TestExtractSampleReport(t *testing.T) {
	ex := NewExtractor(nil)
	f := ex.Extract("doc-1", sampleReport)

	assert.Equal(t, "MEDICINA VETERINÁRIA", f.CourseName)

	require.NotNil(t, f.RegistryCode)
	assert.Equal(t, 1234567, *f.RegistryCode)

	require.NotNil(t, f.EvaluationYear)
	assert.Equal(t, 2019, *f.EvaluationYear)

	assert.Equal(t, "Palotina", f.Campus)
	assert.Equal(t, "Bacharelado", f.Modality)

	require.Len(t, f.DimensionScores, 3)
	assert.Equal(t, entity.Decimal(3.67), f.DimensionScores[1])
	assert.Equal(t, entity.Decimal(4.2), f.DimensionScores[2])
	assert.Equal(t, entity.Decimal(3), f.DimensionScores[3])

	assert.Equal(t, entity.Decimal(3.86), f.FinalContinuous)
	require.NotNil(t, f.FinalBand)
	assert.Equal(t, 4, *f.FinalBand)
}

func TestExtractCourseNameDenylist(t *testing.T) {
	ex := NewExtractor(nil)
	text := `Curso(s) / Habilitação(ões) sendo avaliado(s): COMISSÃO DE AVALIADORES Informações`

	f := ex.Extract("doc-2", text)
	assert.Empty(t, f.CourseName, "denylisted match must reject to null, not propagate")
}

func TestExtractCourseNameBodyFallback(t *testing.T) {
	ex := NewExtractor(nil)
	text := `O relatório cobre o Curso(s) / Habilitação(ões) em avaliação: AGRONOMIA ; Grau: Bacharelado`

	f := ex.Extract("doc-3", text)
	assert.Equal(t, "AGRONOMIA", f.CourseName)
}

func TestExtractRegistryPositionalFallback(t *testing.T) {
	ex := NewExtractor(nil)
	// no labeled code anywhere; the first standalone 7-digit number near the
	// top of the document is taken instead
	text := `RELATÓRIO DE AVALIAÇÃO Protocolo: 201612345 Código: 1180509 Processo: 23000`

	f := ex.Extract("doc-4", text)
	require.NotNil(t, f.RegistryCode)
	assert.Equal(t, 1180509, *f.RegistryCode)
}

func TestExtractMissingFieldsAreNull(t *testing.T) {
	ex := NewExtractor(nil)
	f := ex.Extract("doc-5", "texto sem nenhum campo estruturado")

	assert.Empty(t, f.CourseName)
	assert.Nil(t, f.RegistryCode)
	assert.Nil(t, f.EvaluationYear)
	assert.Empty(t, f.Campus)
	assert.Empty(t, f.City)
	assert.Empty(t, f.Modality)
	assert.Empty(t, f.DimensionScores)
	assert.False(t, f.FinalContinuous.Valid)
	assert.Nil(t, f.FinalBand)
}

func TestExtractCityOnlyWithoutCampus(t *testing.T) {
	ex := NewExtractor(nil)
	text := `Endereço: Rua XV de Novembro, 1299 CEP: 80060-000 Curitiba - PR. Grau: Licenciatura`

	f := ex.Extract("doc-6", text)
	assert.Empty(t, f.Campus)
	assert.Equal(t, "Curitiba", f.City)
}

func TestCollapseWhitespace(t *testing.T) {
	in := "a\n\n  b\tc \f d"
	assert.Equal(t, "a b c d", CollapseWhitespace(in))
}
