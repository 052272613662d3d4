package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mofachat/internal/domain"
)

func TestAssembleContextEmpty(t *testing.T) {
	assert.Equal(t, "", AssembleContext(nil))
	assert.Equal(t, "", AssembleContext([]domain.ScoredDocument{}))
}

func TestAssembleContextChunkWithAllMetadata(t *testing.T) {
	docs := []domain.ScoredDocument{{
		Document: domain.ProcessedDocument{
			Content: "Visa fees are 100 SAR.",
			Metadata: map[string]string{
				"type":    "chunk",
				"heading": "Visa Fees",
				"source":  "mofa.gov.sa",
				"url":     "https://www.mofa.gov.sa/fees",
			},
			SourceID: "mofa.gov.sa-Visa Fees",
		},
		Score: 0.92,
	}}

	out := AssembleContext(docs)
	assert.Equal(t, "# Visa Fees\nVisa fees are 100 SAR.\nSource: mofa.gov.sa\nReference: [Visa Fees](https://www.mofa.gov.sa/fees)", out)
}

func TestAssembleContextFileDocument(t *testing.T) {
	docs := []domain.ScoredDocument{{
		Document: domain.ProcessedDocument{
			Content:  "Passport renewal takes ten days.",
			Metadata: map[string]string{"type": "txt", "filename": "passports.txt"},
			SourceID: "passports.txt",
		},
		Score: 0.8,
	}}

	out := AssembleContext(docs)
	assert.NotContains(t, out, "#")
	assert.Contains(t, out, "Passport renewal takes ten days.")
	assert.Contains(t, out, "Source: passports.txt")
	assert.NotContains(t, out, "Reference:")
}

func TestAssembleContextSeparatorAndOrder(t *testing.T) {
	docs := []domain.ScoredDocument{
		{Document: domain.ProcessedDocument{Content: "first", Metadata: map[string]string{}, SourceID: "a"}, Score: 0.9},
		{Document: domain.ProcessedDocument{Content: "second", Metadata: map[string]string{}, SourceID: "b"}, Score: 0.8},
	}

	out := AssembleContext(docs)
	require.Contains(t, out, "\n\n---\n\n")
	assert.Equal(t, "first\nSource: a\n\n---\n\nsecond\nSource: b", out)
}
