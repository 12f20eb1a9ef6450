package domain

import "context"

// Chunk is a bounded-size segment of the corpus used as the unit of retrieval.
// ID equals the chunk's position in the corpus chunk sequence.
type Chunk struct {
	ID   int
	Text string
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// GroundingDocument is a retrieved chunk handed to the language model.
type GroundingDocument struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// GenerateRequest is the input of a single generation call.
type GenerateRequest struct {
	Model     string
	Message   string
	Documents []GroundingDocument
	Preamble  string
}

// Source tells which resolution stage produced an answer.
type Source string

const (
	SourcePrompt     Source = "prompt"
	SourceGreeting   Source = "greeting"
	SourcePredefined Source = "predefined"
	SourceDirect     Source = "direct"
	SourceGrounded   Source = "grounded"
	SourceUngrounded Source = "ungrounded"
	SourceFallback   Source = "fallback"
)

// Answer is the outcome of resolving one query. Text is always set.
type Answer struct {
	Text      string
	Source    Source
	Documents []GroundingDocument
}

// Chunker splits corpus text into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(text string) []Chunk
}

// Retriever ranks corpus chunks against a query.
type Retriever interface {
	Retrieve(query string, topK int, minScore float64) []SearchResult
}

// Generator is a hosted language model producing an answer for a request.
type Generator interface {
	Name() string
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Answerer resolves free-text questions into answers.
type Answerer interface {
	Answer(ctx context.Context, query string) Answer
}
