package processor

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufpr-cpa/inep-extractor/constants"
	"github.com/ufpr-cpa/inep-extractor/internal/assemble"
	"github.com/ufpr-cpa/inep-extractor/internal/catalog"
	"github.com/ufpr-cpa/inep-extractor/internal/common"
	"github.com/ufpr-cpa/inep-extractor/internal/extract"
	"github.com/ufpr-cpa/inep-extractor/internal/fields"
	"github.com/ufpr-cpa/inep-extractor/internal/segment"
)

const completeReport = `
Código MEC: 1234567
Curso(s) / Habilitação(ões) sendo avaliado(s): AGRONOMIA
Informações da comissão
Período de Visita: 10/03/2019 a 13/03/2019
5 - Campus Palotina - Rua Pioneiro, 2153
Grau: Bacharelado

1.1. Políticas institucionais no âmbito do curso. 4
Justificativa para conceito 4: As políticas estão implantadas.

2.1. Núcleo Docente Estruturante. 5
Justificativa para conceito 5: O NDE atua de forma plena.
`

const incompleteReport = `
Curso(s) / Habilitação(ões) sendo avaliado(s): ZOOTECNIA
Informações da comissão
Grau: Bacharelado

3.1. Gabinetes de trabalho para professores. NSA
Justificativa para conceito NSA: Não se aplica.
`

// fakeAcquirer serves canned text per document id and records call counts.
type fakeAcquirer struct {
	mu    sync.Mutex
	texts map[string]string
	calls map[string]int
}

func (f *fakeAcquirer) Acquire(_ context.Context, doc extract.Document) (extract.AcquireResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[doc.ID]++
	text, ok := f.texts[doc.ID]
	if !ok {
		return extract.AcquireResult{}, common.WrapError(common.ErrExtractionFailed, "no text")
	}
	return extract.AcquireResult{Text: text, Pages: 1, Method: "pdf-text"}, nil
}

func newTestProcessor(t *testing.T, texts map[string]string) (*Processor, *fakeAcquirer) {
	t.Helper()
	cat, err := catalog.Load(nil)
	require.NoError(t, err)

	acq := &fakeAcquirer{texts: texts, calls: make(map[string]int)}
	proc := NewProcessor(acq,
		fields.NewExtractor(nil),
		segment.NewSegmenter(nil),
		assemble.NewAssembler(cat, nil),
		nil,
	)
	return proc, acq
}

func TestProcessCompleteDocument(t *testing.T) {
	proc, _ := newTestProcessor(t, map[string]string{"doc-a": completeReport})

	res := proc.Process(context.Background(), extract.Document{ID: "doc-a", Path: "/tmp/doc-a.pdf"})
	require.NoError(t, res.Err)
	assert.Equal(t, constants.StatusComplete, res.Status)
	assert.Equal(t, "Agronomia", res.Record.CourseName)
	assert.Equal(t, "Campus Palotina", res.Record.Campus)
	assert.Equal(t, "Palotina", res.Record.City)
	assert.Len(t, res.Entries, 2)
}

func TestProcessSkippedDocument(t *testing.T) {
	proc, _ := newTestProcessor(t, map[string]string{})

	res := proc.Process(context.Background(), extract.Document{ID: "doc-x", Path: "/tmp/doc-x.pdf"})
	require.Error(t, res.Err)
	assert.Equal(t, constants.StatusSkipped, res.Status)
	assert.Empty(t, res.Entries)
}

func TestBatchRun(t *testing.T) {
	texts := map[string]string{
		"doc-a": completeReport,
		"doc-b": incompleteReport,
	}
	proc, _ := newTestProcessor(t, texts)
	batch := NewBatch(proc, 4, nil)

	docs := []extract.Document{
		{ID: "doc-c", Path: "/tmp/doc-c.pdf"}, // no text -> skipped
		{ID: "doc-a", Path: "/tmp/doc-a.pdf"},
		{ID: "doc-b", Path: "/tmp/doc-b.pdf"},
	}

	results, summary, err := batch.Run(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// results come back ordered by document id regardless of input order
	assert.Equal(t, "doc-a", results[0].Document.ID)
	assert.Equal(t, "doc-b", results[1].Document.ID)
	assert.Equal(t, "doc-c", results[2].Document.ID)

	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 1, summary.Complete)
	assert.Equal(t, 1, summary.Incomplete)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 3, summary.Indicators)

	assert.Contains(t, summary.MissingByDocument, "doc-b")
	assert.Contains(t, summary.MissingByDocument["doc-b"], "registry_code")
	assert.NotContains(t, summary.MissingByDocument, "doc-a")
}

func TestBatchRunIdempotent(t *testing.T) {
	proc, _ := newTestProcessor(t, map[string]string{"doc-a": completeReport})
	batch := NewBatch(proc, 2, nil)
	docs := []extract.Document{{ID: "doc-a", Path: "/tmp/doc-a.pdf"}}

	first, _, err := batch.Run(context.Background(), docs)
	require.NoError(t, err)
	second, _, err := batch.Run(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, first[0].Record, second[0].Record)
	assert.Equal(t, first[0].Entries, second[0].Entries)
}

func TestBatchRunMoreWorkersThanDocs(t *testing.T) {
	proc, acq := newTestProcessor(t, map[string]string{"doc-a": completeReport})
	batch := NewBatch(proc, 16, nil)

	_, summary, err := batch.Run(context.Background(), []extract.Document{
		{ID: "doc-a", Path: "/tmp/doc-a.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, acq.calls["doc-a"])
}

func TestDiscoverDocuments(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.PDF", "notes.txt", "c.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0o644))
	}

	docs, err := DiscoverDocuments(dir)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
	assert.Equal(t, "c", docs[2].ID)
}
