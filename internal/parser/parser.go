package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"mofachat/internal/domain"
)

// Parser converts raw files into normalized ProcessedDocuments.
type Parser struct{}

// New creates a document parser.
func New() *Parser {
	return &Parser{}
}

// Parse reads the file and dispatches on the type hint, falling back
// to the filename extension. Supported types: pdf, csv, txt, and
// jsonl-chunk for a single pre-chunked JSON record.
func (p *Parser) Parse(r io.Reader, filename, typeHint string) (*domain.ProcessedDocument, error) {
	kind := strings.ToLower(strings.TrimSpace(typeHint))
	if kind == "" {
		kind = strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	}
	switch kind {
	case "pdf":
		return p.parsePDF(r, filename)
	case "csv":
		return p.parseCSV(r, filename)
	case "txt":
		return p.parseText(r, filename)
	case "jsonl-chunk":
		return p.parseChunkRecord(r)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, kind)
	}
}

func (p *Parser) parseText(r io.Reader, filename string) (*domain.ProcessedDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	content := string(data)
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyContent, filename)
	}
	return &domain.ProcessedDocument{
		Content: content,
		Metadata: map[string]string{
			"type":     "txt",
			"filename": filepath.Base(filename),
		},
		SourceID: filepath.Base(filename),
	}, nil
}
