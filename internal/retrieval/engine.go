package retrieval

import (
	"context"
	"fmt"

	"mofachat/internal/domain"
	"mofachat/internal/logger"
)

// Engine embeds queries and ranks stored documents against them. The
// relevance threshold and top-K cutoff are caller supplied; defaults
// belong to configuration, not the algorithm.
type Engine struct {
	embedder domain.Embedder
	store    domain.DocumentStore
}

// NewEngine creates a retrieval engine over the given collaborators.
func NewEngine(embedder domain.Embedder, store domain.DocumentStore) *Engine {
	return &Engine{embedder: embedder, store: store}
}

// Retrieve embeds the query and returns the stored documents scoring
// strictly above minScore, best first, at most topK of them. Embedding
// failures propagate; the caller decides whether to answer without
// grounding.
func (e *Engine) Retrieve(ctx context.Context, query string, topK int, minScore float64) ([]domain.ScoredDocument, error) {
	vector, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("retrieval: embed query: %w", err)
	}
	results := e.store.Search(vector, topK, minScore)
	logger.Debug("retrieval: %d/%d documents over threshold %.2f", len(results), e.store.Len(), minScore)
	return results, nil
}
