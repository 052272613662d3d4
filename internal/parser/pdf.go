package parser

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"mofachat/internal/domain"
)

// parsePDF extracts text page by page in document order. Pages where
// plain-text extraction yields nothing fall back to the styled text
// runs before the page is given up on.
func (p *Parser) parsePDF(r io.Reader, filename string) (doc *domain.ProcessedDocument, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	// The pdf library panics on some malformed files.
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("%w: %v", domain.ErrParse, rec)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	var content strings.Builder
	pageCount := reader.NumPage()
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text := extractPageText(page)
		if text == "" {
			continue
		}
		content.WriteString(text)
		content.WriteString("\n")
	}
	if strings.TrimSpace(content.String()) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyContent, filename)
	}
	return &domain.ProcessedDocument{
		Content: content.String(),
		Metadata: map[string]string{
			"type":      "pdf",
			"filename":  filepath.Base(filename),
			"pageCount": strconv.Itoa(pageCount),
		},
		SourceID: filepath.Base(filename),
	}, nil
}

// extractPageText tries plain-text extraction first, then the styled
// text runs of the page content stream.
func extractPageText(page pdf.Page) string {
	text, err := page.GetPlainText(nil)
	if err == nil && strings.TrimSpace(text) != "" {
		return text
	}
	var runs strings.Builder
	for _, t := range page.Content().Text {
		runs.WriteString(t.S)
	}
	return strings.TrimSpace(runs.String())
}
