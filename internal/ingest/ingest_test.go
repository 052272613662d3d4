package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mofachat/internal/domain"
	"mofachat/internal/parser"
	"mofachat/internal/store/memory"
)

type fixedEmbedder struct {
	vector []float64
	err    error
}

func (f *fixedEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	return f.vector, f.err
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newIngester(store domain.DocumentStore, docsDir, corpusPath string) *Ingester {
	return New(parser.New(), &fixedEmbedder{vector: []float64{1, 0}}, store, docsDir, corpusPath, 2)
}

func TestRunIngestsSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fees.txt", "Visa fees are 100 SAR.")
	writeFile(t, dir, "cities.csv", "city,country\nRiyadh,Saudi Arabia\n")
	writeFile(t, dir, "notes.docx", "unsupported, never scanned")

	store := memory.NewStore()
	report, err := newIngester(store, dir, "").Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 2, store.Len())
}

func TestRunBadDocumentDoesNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.txt", "Some useful content.")
	writeFile(t, dir, "blank.txt", "   \n")
	writeFile(t, dir, "broken.pdf", "not really a pdf")

	store := memory.NewStore()
	report, err := newIngester(store, dir, "").Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 1, store.Len())
}

func TestRunCreatesAndSeedsDocsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")

	store := memory.NewStore()
	report, err := newIngester(store, dir, "").Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)

	// seed file is on disk and in the store
	_, statErr := os.Stat(filepath.Join(dir, seedFilename))
	assert.NoError(t, statErr)
	docs := store.All()
	require.Len(t, docs, 1)
	assert.Contains(t, docs[0].Content, "Ministry of Foreign Affairs")
}

func TestRunDoesNotSeedNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "existing.txt", "already here")

	store := memory.NewStore()
	_, err := newIngester(store, dir, "").Run(context.Background())
	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(dir, seedFilename))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunIngestsCorpus(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus.jsonl")
	lines := `{"chunk":"Visa fees are 100 SAR.","metadata":{"heading":"Fees","source":"mofa.gov.sa","url":"https://mofa.gov.sa/fees"}}
not valid json
{"chunk":"","metadata":{"heading":"Empty","source":"mofa.gov.sa"}}
{"chunk":"Consular services are available abroad.","metadata":{"heading":"Consular","source":"mofa.gov.sa"}}
`
	require.NoError(t, os.WriteFile(corpus, []byte(lines), 0o644))

	docsDir := filepath.Join(dir, "docs")
	store := memory.NewStore()
	report, err := newIngester(store, docsDir, corpus).Run(context.Background())
	require.NoError(t, err)
	// 2 corpus records + 1 seeded default document
	assert.Equal(t, 3, report.Loaded)
	assert.Equal(t, 2, report.Skipped)
}

func TestRunSkipsDuplicateCorpusRecords(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus.jsonl")
	lines := `{"chunk":"First version.","metadata":{"heading":"Fees","source":"mofa.gov.sa"}}
{"chunk":"Second version.","metadata":{"heading":"Fees","source":"mofa.gov.sa"}}
`
	require.NoError(t, os.WriteFile(corpus, []byte(lines), 0o644))

	docsDir := t.TempDir()
	writeFile(t, docsDir, "anchor.txt", "keep the dir from seeding")
	store := memory.NewStore()
	report, err := newIngester(store, docsDir, corpus).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Loaded) // anchor file + first record
	assert.Equal(t, 1, report.Skipped)

	docs := store.All()
	for _, d := range docs {
		if d.SourceID == "mofa.gov.sa-Fees" {
			assert.Equal(t, "First version.", d.Content)
		}
	}
}

func TestRunEmbeddingFailureSkipsDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.txt", "content")

	store := memory.NewStore()
	ing := New(parser.New(), &fixedEmbedder{err: domain.ErrEmbeddingService}, store, dir, "", 1)
	report, err := ing.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Loaded)
	assert.Equal(t, 1, report.Skipped)
	assert.Zero(t, store.Len())
}
