package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"mofachat/internal/domain"
)

// parseCSV reformats a CSV into "header: value" blocks, one blank-line
// separated block per row. The first row is the header; rows whose
// column count differs from the header are skipped.
func (p *Parser) parseCSV(r io.Reader, filename string) (*domain.ProcessedDocument, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		headers  []string
		content  strings.Builder
		rowCount int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		rowCount++
		if headers == nil {
			headers = record
			continue
		}
		if len(record) != len(headers) {
			continue
		}
		for i, h := range headers {
			content.WriteString(h)
			content.WriteString(": ")
			content.WriteString(record[i])
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}
	if headers == nil {
		return nil, fmt.Errorf("%w: empty csv %s", domain.ErrParse, filename)
	}
	if strings.TrimSpace(content.String()) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyContent, filename)
	}
	return &domain.ProcessedDocument{
		Content: content.String(),
		Metadata: map[string]string{
			"type":     "csv",
			"filename": filepath.Base(filename),
			"rowCount": strconv.Itoa(rowCount),
		},
		SourceID: filepath.Base(filename),
	}, nil
}
