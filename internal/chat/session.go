package chat

import (
	"context"
	"sync"

	"mofachat/internal/domain"
	"mofachat/internal/logger"
	"mofachat/internal/retrieval"
)

// errorReply is appended to history when a turn fails. A turn never
// fails silently: it always ends with exactly one assistant message.
const errorReply = "Sorry, I encountered an error. Please try again."

// turnState tracks where a turn currently is. Errors in either
// awaiting state transition straight back to idle.
type turnState int

const (
	stateIdle turnState = iota
	stateAwaitingRetrieval
	stateAwaitingGeneration
)

// Session holds the ordered message history of one conversation and
// drives a single turn at a time: retrieve, then generate, then append
// the reply. History is append-only for the session's lifetime.
type Session struct {
	retriever domain.Retriever
	completer domain.Completer

	systemPrompt  string
	historyWindow int
	topK          int
	minScore      float64

	mu      sync.RWMutex
	state   turnState
	history []domain.Message
}

// Options bound a session's conversation handling.
type Options struct {
	SystemPrompt  string
	HistoryWindow int
	TopK          int
	MinScore      float64
}

// NewSession creates a session over the given collaborators.
func NewSession(retriever domain.Retriever, completer domain.Completer, opts Options) *Session {
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 10
	}
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	return &Session{
		retriever:     retriever,
		completer:     completer,
		systemPrompt:  opts.SystemPrompt,
		historyWindow: opts.HistoryWindow,
		topK:          opts.TopK,
		minScore:      opts.MinScore,
	}
}

// AppendUser appends a user text message to the history.
func (s *Session) AppendUser(text string) {
	s.append(domain.NewTextMessage(domain.RoleUser, text))
}

// AppendUserImage appends a user image message to the history.
// Text-only prompt building skips it.
func (s *Session) AppendUserImage(data []byte, mimeType string) {
	s.append(domain.NewImageMessage(domain.RoleUser, data, mimeType))
}

// AppendAssistant appends an assistant text message to the history.
func (s *Session) AppendAssistant(text string) {
	s.append(domain.NewTextMessage(domain.RoleAssistant, text))
}

func (s *Session) append(m domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, m)
}

// History returns a copy of the full message history in order.
func (s *Session) History() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Message, len(s.history))
	copy(out, s.history)
	return out
}

// RecentWindow returns the last max messages in chronological order,
// fewer if the history is shorter.
func (s *Session) RecentWindow(max int) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if max <= 0 {
		return nil
	}
	start := len(s.history) - max
	if start < 0 {
		start = 0
	}
	out := make([]domain.Message, len(s.history)-start)
	copy(out, s.history[start:])
	return out
}

// BuildPrompt assembles the ordered role/content pairs for a
// generative call: system prompt first, then a context entry when a
// grounding block is present, then the recent history window (text
// messages only), then the current query last.
func (s *Session) BuildPrompt(systemPrompt, contextBlock, query string) []domain.PromptMessage {
	prompt := []domain.PromptMessage{{Role: string(domain.RoleSystem), Content: systemPrompt}}
	if contextBlock != "" {
		prompt = append(prompt, domain.PromptMessage{
			Role:    string(domain.RoleSystem),
			Content: contextInstruction + contextBlock,
		})
	}
	for _, m := range s.RecentWindow(s.historyWindow) {
		text, ok := m.Text()
		if !ok {
			continue
		}
		prompt = append(prompt, domain.PromptMessage{Role: string(m.Role), Content: text})
	}
	return append(prompt, domain.PromptMessage{Role: string(domain.RoleUser), Content: query})
}

// Run executes one turn: retrieve grounding for the query, generate a
// reply, and append it. Any failure collapses into a single assistant
// error message; the turn always appends exactly one assistant message
// and exactly one user message. Retrieval completes or fails before
// generation is issued. Sessions do not support concurrent turns.
func (s *Session) Run(ctx context.Context, query string) string {
	s.setState(stateAwaitingRetrieval)
	docs, err := s.retriever.Retrieve(ctx, query, s.topK, s.minScore)
	if err != nil {
		logger.Error("turn: retrieval failed: %v", err)
		return s.finish(query, errorReply)
	}
	contextBlock := retrieval.AssembleContext(docs)

	s.setState(stateAwaitingGeneration)
	prompt := s.BuildPrompt(s.systemPrompt, contextBlock, query)
	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		logger.Error("turn: generation failed: %v", err)
		return s.finish(query, errorReply)
	}
	return s.finish(query, reply)
}

// finish records the turn's user message and its single assistant
// message, and returns to idle.
func (s *Session) finish(query, reply string) string {
	s.AppendUser(query)
	s.AppendAssistant(reply)
	s.setState(stateIdle)
	return reply
}

func (s *Session) setState(st turnState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

// Idle reports whether no turn is in flight.
func (s *Session) Idle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == stateIdle
}
