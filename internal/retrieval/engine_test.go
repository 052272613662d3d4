package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mofachat/internal/domain"
	"mofachat/internal/store/memory"
)

// stubEmbedder returns a fixed vector, or a fixed error.
type stubEmbedder struct {
	vector []float64
	err    error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	return s.vector, s.err
}

func TestRetrieveRanksStoredDocuments(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Insert(domain.ProcessedDocument{
		Content:  "Visa fees are 100 SAR.",
		Metadata: map[string]string{"type": "txt", "filename": "fees.txt"},
		SourceID: "fees.txt",
	}, []float64{1, 0, 0}))
	require.NoError(t, store.Insert(domain.ProcessedDocument{
		Content:  "Unrelated topic.",
		Metadata: map[string]string{"type": "txt", "filename": "other.txt"},
		SourceID: "other.txt",
	}, []float64{0, 1, 0}))

	engine := NewEngine(&stubEmbedder{vector: []float64{1, 0, 0}}, store)
	results, err := engine.Retrieve(context.Background(), "How much is a visa?", 3, 0.7)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "fees.txt", results[0].Document.SourceID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
}

func TestRetrievePropagatesEmbeddingFailure(t *testing.T) {
	store := memory.NewStore()
	engine := NewEngine(&stubEmbedder{err: domain.ErrEmbeddingService}, store)

	_, err := engine.Retrieve(context.Background(), "query", 3, 0.7)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingService)
}

func TestRetrievePropagatesEmptyEmbedding(t *testing.T) {
	store := memory.NewStore()
	engine := NewEngine(&stubEmbedder{err: domain.ErrEmptyEmbedding}, store)

	_, err := engine.Retrieve(context.Background(), "query", 3, 0.7)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyEmbedding)
}

func TestRetrieveEmptyStore(t *testing.T) {
	engine := NewEngine(&stubEmbedder{vector: []float64{1, 0}}, memory.NewStore())

	results, err := engine.Retrieve(context.Background(), "query", 3, 0.7)
	require.NoError(t, err)
	assert.Empty(t, results)
}
