package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain"
)

type stubAnswerer struct{ got []string }

func (s *stubAnswerer) Answer(_ context.Context, q string) domain.Answer {
	s.got = append(s.got, q)
	return domain.Answer{Text: "answer to " + q, Source: domain.SourceGrounded, Documents: []domain.GroundingDocument{{ID: "0", Text: "x"}}}
}

func typeText(m tea.Model, s string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestModel_AsksAsynchronously(t *testing.T) {
	stub := &stubAnswerer{}
	var m tea.Model = New(context.Background(), stub, "summary line")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = typeText(m, "library hours")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Empty(t, stub.got)
	assert.Contains(t, m.View(), "Thinking...")

	msg := cmd()
	require.IsType(t, answerMsg{}, msg)
	assert.Equal(t, []string{"library hours"}, stub.got)

	m, _ = m.Update(msg)
	view := m.View()
	assert.Contains(t, view, "answer to library hours")
	assert.Contains(t, view, "[grounded, 1 documents]")
	assert.Contains(t, view, "summary line")
}

func TestModel_EmptyEnterStillAsks(t *testing.T) {
	stub := &stubAnswerer{}
	var m tea.Model = New(context.Background(), stub, "")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{""}, stub.got)
}

func TestModel_Quit(t *testing.T) {
	var m tea.Model = New(context.Background(), &stubAnswerer{}, "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_LoadingBeforeResize(t *testing.T) {
	m := New(context.Background(), &stubAnswerer{}, "")
	assert.Equal(t, "Loading...", m.View())
}
