package domain

import "context"

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Completer generates an assistant reply for an ordered prompt.
type Completer interface {
	Complete(ctx context.Context, messages []PromptMessage) (string, error)
}

// DocumentStore holds processed documents with their embeddings and
// supports brute-force similarity search.
type DocumentStore interface {
	Insert(doc ProcessedDocument, vector []float64) error
	Search(queryVector []float64, topK int, minScore float64) []ScoredDocument
	All() []ProcessedDocument
	Len() int
	Reset()
}

// Retriever ranks stored documents against a free-text query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int, minScore float64) ([]ScoredDocument, error)
}
