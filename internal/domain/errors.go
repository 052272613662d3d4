package domain

import "errors"

// Ingestion-time errors. Each affects a single document; callers log
// and skip, the batch continues.
var (
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrParse           = errors.New("document parse failed")
	ErrEmptyContent    = errors.New("document has no extractable text")
	ErrDuplicateSource = errors.New("source id already stored")
)

// Query-time errors. These propagate to the turn level where they
// collapse into a single user-visible assistant message.
var (
	ErrEmbeddingService = errors.New("embedding service request failed")
	ErrEmptyEmbedding   = errors.New("embedding service returned no vectors")
)
