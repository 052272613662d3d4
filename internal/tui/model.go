package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mofachat/internal/domain"
)

// SessionPort is the TUI-facing subset of the conversation session.
type SessionPort interface {
	Run(ctx context.Context, query string) string
	History() []domain.Message
}

// turnDoneMsg signals that an in-flight turn finished. Replies landing
// after quit are simply dropped with the program.
type turnDoneMsg struct{}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	session SessionPort
	input   textinput.Model
	view    viewport.Model
	status  string
	banner  string
	waiting bool
	ready   bool
}

// New creates a new chat TUI model.
func New(session SessionPort, banner string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about MOFA services and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		session: session,
		input:   ti,
		view:    vp,
		banner:  banner,
		status:  "Ready.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // banner+title, status line, input frame, spacer
		vh := msg.Height - reserved - th
		if vh < 3 {
			vh = 3
		}
		m.view.Width = max(20, msg.Width)
		m.view.Height = vh
		m.view.SetContent(m.renderTranscript())
		m.view.GotoBottom()
		return m, nil
	case turnDoneMsg:
		m.waiting = false
		m.status = "Ready."
		m.view.SetContent(m.renderTranscript())
		m.view.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.input.SetValue("")
				m.waiting = true
				m.status = "Thinking..."
				session := m.session
				return m, func() tea.Msg {
					session.Run(context.Background(), q)
					return turnDoneMsg{}
				}
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := lipgloss.NewStyle().Bold(true).Render("MOFA Assistant")
	banner := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.banner)
	transcript := transcriptStyle.Render(m.view.View())
	input := inputBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return title + "\n" + banner + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	history := m.session.History()
	if len(history) == 0 {
		return "No messages yet. Ask a question below."
	}
	var b strings.Builder
	for i, msg := range history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(roleLabel(msg.Role))
		b.WriteString("\n")
		if text, ok := msg.Text(); ok {
			b.WriteString(text)
		} else {
			b.WriteString("[image]")
		}
	}
	return b.String()
}

func roleLabel(role domain.Role) string {
	if role == domain.RoleUser {
		return userStyle.Render("You")
	}
	return assistantStyle.Render("Assistant")
}

var (
	transcriptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
