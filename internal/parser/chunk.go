package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mofachat/internal/domain"
)

// ChunkMetadata describes one pre-segmented corpus record.
type ChunkMetadata struct {
	Heading string `json:"heading"`
	Source  string `json:"source"`
	URL     string `json:"url,omitempty"`
}

// ChunkRecord is one newline-delimited JSON corpus record: text that
// arrives already split, with attribution attached.
type ChunkRecord struct {
	Chunk    string        `json:"chunk"`
	Metadata ChunkMetadata `json:"metadata"`
}

// parseChunkRecord decodes a single JSON chunk record from r.
func (p *Parser) parseChunkRecord(r io.Reader) (*domain.ProcessedDocument, error) {
	var rec ChunkRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	return p.ParseChunk(rec)
}

// ParseChunk maps a pre-chunked record directly onto a
// ProcessedDocument; no text extraction is involved.
func (p *Parser) ParseChunk(rec ChunkRecord) (*domain.ProcessedDocument, error) {
	if strings.TrimSpace(rec.Chunk) == "" {
		return nil, fmt.Errorf("%w: chunk %q from %q", domain.ErrEmptyContent, rec.Metadata.Heading, rec.Metadata.Source)
	}
	meta := map[string]string{
		"type":    "chunk",
		"source":  rec.Metadata.Source,
		"heading": rec.Metadata.Heading,
	}
	if rec.Metadata.URL != "" {
		meta["url"] = rec.Metadata.URL
	}
	return &domain.ProcessedDocument{
		Content:  rec.Chunk,
		Metadata: meta,
		SourceID: rec.Metadata.Source + "-" + rec.Metadata.Heading,
	}, nil
}
