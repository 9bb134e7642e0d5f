package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ufpr-cpa/inep-extractor/internal/entity"
)

func testRecord() entity.CourseRecord {
	code := 1234567
	year := 2019
	band := 4
	return entity.CourseRecord{
		DocumentID:     "relatorio-1",
		CourseName:     "Agronomia",
		RegistryCode:   &code,
		EvaluationYear: &year,
		Modality:       "Bacharelado",
		City:           "Palotina",
		Campus:         "Campus Palotina",
		DimensionScores: map[int]entity.Score{
			1: entity.Decimal(3.67),
			2: entity.Decimal(4.2),
		},
		FinalContinuous: entity.Decimal(3.86),
		FinalBand:       &band,
	}
}

func TestWriteRecordsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "records.xlsx")
	svc := NewService(nil)

	record := testRecord()
	entries := map[string][]entity.IndicatorEntry{
		"relatorio-1": {
			{DocumentID: "relatorio-1", IndicatorID: "1.1", Grade: entity.Decimal(4)},
			{DocumentID: "relatorio-1", IndicatorID: "1.2", Grade: entity.NotApplicable()},
		},
	}
	require.NoError(t, svc.WriteRecordsXLSX(path, []entity.CourseRecord{record}, entries))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Records")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header := rows[0]
	// 7 scalar columns + 57 indicators + 3 dimensions + 2 final concepts
	assert.Len(t, header, 69)
	assert.Equal(t, "document_id", header[0])
	assert.Equal(t, "1.1", header[7])
	assert.Equal(t, "3.17", header[63])
	assert.Equal(t, "final_band_score", header[68])

	got := rows[1]
	assert.Equal(t, "relatorio-1", got[0])
	assert.Equal(t, "Agronomia", got[1])
	assert.Equal(t, "1234567", got[2])
	assert.Equal(t, "4", got[7], "indicator 1.1 grade")
	assert.Equal(t, "NSA", got[8], "indicator 1.2 sentinel")
}

func TestWriteJustificationsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "justifications.xlsx")
	svc := NewService(nil)

	record := testRecord()
	entries := []entity.IndicatorEntry{
		{DocumentID: "relatorio-1", IndicatorID: "1.1", Grade: entity.Decimal(4), Justification: "As políticas estão implantadas."},
		{DocumentID: "relatorio-2", IndicatorID: "2.1", Justification: "Sem conceito registrado."},
	}
	byDoc := map[string]entity.CourseRecord{"relatorio-1": record}

	require.NoError(t, svc.WriteJustificationsXLSX(path, entries, byDoc))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Justifications")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"document_id", "course_name", "registry_code", "indicator_id", "grade", "justification_text"}, rows[0])
	assert.Equal(t, "Agronomia", rows[1][1])
	assert.Equal(t, "As políticas estão implantadas.", rows[1][5])

	// unknown document keeps its row, without denormalized course data
	assert.Equal(t, "relatorio-2", rows[2][0])
	assert.Equal(t, "2.1", rows[2][3])
}
