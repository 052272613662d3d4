package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProcessedDocument is a single ingested unit: normalized text plus
// descriptive metadata. Immutable after creation.
type ProcessedDocument struct {
	Content  string
	Metadata map[string]string
	SourceID string
}

// ScoredDocument pairs a stored document with its similarity score
// against a query. Scores lie in [-1, 1].
type ScoredDocument struct {
	Document ProcessedDocument
	Score    float64
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageContent is the payload of a chat message: either text or an
// image. Text-only consumers must skip image messages rather than
// coerce them.
type MessageContent interface {
	isMessageContent()
}

// TextContent is a plain text message payload.
type TextContent struct {
	Text string
}

// ImageContent is an image message payload.
type ImageContent struct {
	Data     []byte
	MIMEType string
}

func (TextContent) isMessageContent()  {}
func (ImageContent) isMessageContent() {}

// Message is one entry in a conversation history.
type Message struct {
	ID        string
	Role      Role
	Content   MessageContent
	Timestamp time.Time
}

// NewTextMessage creates a text message with a fresh ID.
func NewTextMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   TextContent{Text: text},
		Timestamp: time.Now(),
	}
}

// NewImageMessage creates an image message with a fresh ID.
func NewImageMessage(role Role, data []byte, mimeType string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   ImageContent{Data: data, MIMEType: mimeType},
		Timestamp: time.Now(),
	}
}

// Text returns the textual payload of the message, or "" and false for
// non-text content.
func (m Message) Text() (string, bool) {
	if t, ok := m.Content.(TextContent); ok {
		return t.Text, true
	}
	return "", false
}

// PromptMessage is a wire-ready role/content pair for a chat
// completion request.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
