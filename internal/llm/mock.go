package llm

import (
	"context"
	"sync"

	"helpdesk/internal/domain"
)

// MockResponse is a queued reply of MockGenerator.
type MockResponse struct {
	Text  string
	Error error
}

// MockGenerator is a test generator that records calls and returns queued
// responses in order, then a default reply.
type MockGenerator struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []domain.GenerateRequest
}

func NewMockGenerator(responses ...MockResponse) *MockGenerator {
	return &MockGenerator{responses: responses}
}

func (m *MockGenerator) Name() string { return "mock" }

func (m *MockGenerator) Generate(_ context.Context, req domain.GenerateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if len(m.responses) == 0 {
		return "Mock response", nil
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.Text, resp.Error
}

// Calls returns all recorded requests.
func (m *MockGenerator) Calls() []domain.GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.GenerateRequest{}, m.calls...)
}

// CallCount returns the number of Generate calls.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
