package memory

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"mofachat/internal/domain"
)

// Store is an in-memory document store using brute-force cosine
// similarity. Writes are serialized behind the mutex; Search never
// observes a partially inserted document.
type Store struct {
	mu       sync.RWMutex
	entries  []entry
	bySource map[string]struct{}
}

type entry struct {
	doc    domain.ProcessedDocument
	vector []float64
}

// NewStore creates an empty document store.
func NewStore() *Store {
	return &Store{bySource: make(map[string]struct{})}
}

// Insert adds a document with its embedding. A SourceID that is
// already present is rejected, not overwritten.
func (s *Store) Insert(doc domain.ProcessedDocument, vector []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bySource[doc.SourceID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateSource, doc.SourceID)
	}
	s.bySource[doc.SourceID] = struct{}{}
	s.entries = append(s.entries, entry{doc: doc, vector: vector})
	return nil
}

// Search ranks every stored document against queryVector by cosine
// similarity, keeps scores strictly above minScore, sorts descending
// with insertion order breaking ties, and truncates to topK.
func (s *Store) Search(queryVector []float64, topK int, minScore float64) []domain.ScoredDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		return nil
	}
	results := make([]domain.ScoredDocument, 0, len(s.entries))
	for _, e := range s.entries {
		score := Cosine(queryVector, e.vector)
		if score > minScore {
			results = append(results, domain.ScoredDocument{Document: e.doc, Score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// All returns every stored document in insertion order.
func (s *Store) All() []domain.ProcessedDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.ProcessedDocument, len(s.entries))
	for i, e := range s.entries {
		docs[i] = e.doc
	}
	return docs
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Reset discards all stored documents and embeddings.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.bySource = make(map[string]struct{})
}

// Cosine computes the cosine similarity of two vectors. Mismatched
// lengths and zero-norm vectors score 0; it never fails.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
