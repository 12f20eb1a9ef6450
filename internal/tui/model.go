package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"helpdesk/internal/domain"
)

// turn is one question and, once resolved, its answer.
type turn struct {
	query   string
	answer  domain.Answer
	pending bool
}

// answerMsg carries a resolved answer back into Update.
type answerMsg struct {
	idx    int
	answer domain.Answer
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	ctx      context.Context
	answerer domain.Answerer
	input    textinput.Model
	viewport viewport.Model
	turns    []turn
	summary  string
	status   string
	ready    bool
}

// New creates a new chat model. summary is shown under the header.
func New(ctx context.Context, answerer domain.Answerer, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{ctx: ctx, answerer: answerer, input: ti, viewport: vp, summary: summary, status: "Ready. Ctrl+C to quit."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around transcript and query boxes
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header+summary, status, spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.refresh()
		return m, nil
	case answerMsg:
		if msg.idx >= 0 && msg.idx < len(m.turns) {
			m.turns[msg.idx].answer = msg.answer
			m.turns[msg.idx].pending = false
		}
		m.status = fmt.Sprintf("Answered (%s)", msg.answer.Source)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			m.turns = append(m.turns, turn{query: q, pending: true})
			m.status = "Thinking..."
			m.refresh()
			return m, m.ask(len(m.turns)-1, q)
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask resolves q off the update loop.
func (m Model) ask(idx int, q string) tea.Cmd {
	ctx, answerer := m.ctx, m.answerer
	return func() tea.Msg {
		return answerMsg{idx: idx, answer: answerer.Answer(ctx, q)}
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// View renders the layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("College Help Desk")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.turns) == 0 {
		return "No questions yet."
	}
	width := m.viewport.Width - 4
	var b strings.Builder
	for i, t := range m.turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(userStyle.Render("You: " + t.query))
		b.WriteString("\n")
		if t.pending {
			b.WriteString(pendingStyle.Render("..."))
			continue
		}
		text := t.answer.Text
		if width > 0 {
			text = lipgloss.NewStyle().Width(width).Render(text)
		}
		b.WriteString(text)
		b.WriteString("\n")
		b.WriteString(sourceStyle.Render(sourceLabel(t.answer)))
	}
	return b.String()
}

func sourceLabel(a domain.Answer) string {
	if len(a.Documents) == 0 {
		return "[" + string(a.Source) + "]"
	}
	return fmt.Sprintf("[%s, %d documents]", a.Source, len(a.Documents))
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	pendingStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	sourceStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
