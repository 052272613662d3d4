package retrieval

import (
	"fmt"
	"strings"

	"mofachat/internal/domain"
)

// documentSeparator joins formatted documents in the context block.
const documentSeparator = "\n\n---\n\n"

// AssembleContext formats retrieved documents, in rank order, into a
// single grounding block: optional heading, body, source attribution,
// optional reference link. Empty input yields an empty string; callers
// must treat that as "no grounding available" and must not fabricate a
// context block.
func AssembleContext(docs []domain.ScoredDocument) string {
	if len(docs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		var b strings.Builder
		meta := d.Document.Metadata
		if heading := meta["heading"]; heading != "" {
			b.WriteString("# ")
			b.WriteString(heading)
			b.WriteString("\n")
		}
		b.WriteString(d.Document.Content)
		if source := sourceOf(d.Document); source != "" {
			b.WriteString("\nSource: ")
			b.WriteString(source)
		}
		if url := meta["url"]; url != "" {
			label := meta["heading"]
			if label == "" {
				label = "Link"
			}
			b.WriteString(fmt.Sprintf("\nReference: [%s](%s)", label, url))
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, documentSeparator)
}

func sourceOf(doc domain.ProcessedDocument) string {
	if s := doc.Metadata["source"]; s != "" {
		return s
	}
	if f := doc.Metadata["filename"]; f != "" {
		return f
	}
	return doc.SourceID
}
