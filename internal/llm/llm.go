// Package llm talks to hosted language models. Every provider implements
// domain.Generator; Call turns a provider error into a classified Failure so
// callers handle success and failure explicitly.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"helpdesk/internal/config"
	"helpdesk/internal/domain"
)

// ErrMalformedResponse is returned when a provider answers with a payload
// that has no usable text.
var ErrMalformedResponse = errors.New("malformed model response")

// APIError is a non-2xx response from a provider.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s request failed: status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed: status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// Kind classifies generation failures.
type Kind string

const (
	KindTransport Kind = "transport"
	KindAuth      Kind = "auth"
	KindRateLimit Kind = "rate_limit"
	KindModel     Kind = "model"
	KindMalformed Kind = "malformed"
)

// Failure is a failed generation call.
type Failure struct {
	Kind Kind
	Err  error
}

func (f *Failure) Error() string { return string(f.Kind) + ": " + f.Err.Error() }

func (f *Failure) Unwrap() error { return f.Err }

// Outcome is either generated text or a Failure, never both.
type Outcome struct {
	Text    string
	Failure *Failure
}

// OK reports whether the call produced text.
func (o Outcome) OK() bool { return o.Failure == nil }

// Call runs one generation request. An empty answer counts as malformed.
func Call(ctx context.Context, gen domain.Generator, req domain.GenerateRequest) Outcome {
	text, err := gen.Generate(ctx, req)
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("%w: empty text", ErrMalformedResponse)
	}
	if err != nil {
		return Outcome{Failure: &Failure{Kind: Classify(err), Err: err}}
	}
	return Outcome{Text: strings.TrimSpace(text)}
}

// Classify maps a provider error onto a failure Kind.
func Classify(err error) Kind {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return KindAuth
		case http.StatusTooManyRequests:
			return KindRateLimit
		default:
			return KindModel
		}
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformed
	default:
		return KindTransport
	}
}

// New builds the generator selected by cfg. The API key is read from the
// environment variable cfg.APIKeyEnv.
func New(cfg config.GenerationConfig) (domain.Generator, error) {
	key := cfg.APIKey()
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	switch cfg.Provider {
	case "cohere":
		return NewCohere(CohereConfig{BaseURL: cfg.BaseURL, APIKey: key, Timeout: timeout}), nil
	case "openai":
		return NewOpenAI(OpenAIConfig{BaseURL: cfg.BaseURL, APIKey: key, Timeout: timeout}), nil
	case "gemini":
		return NewGemini(context.Background(), key)
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", cfg.Provider)
	}
}

// decodeError marks a response the SDK could not decode as malformed.
func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return err
}

// systemPrompt folds grounding documents into a system message for providers
// without native document support.
func systemPrompt(preamble string, docs []domain.GroundingDocument) string {
	if len(docs) == 0 {
		return preamble
	}
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\nDOCUMENTS:\n")
	for _, d := range docs {
		fmt.Fprintf(&b, "[%s] %s\n", d.ID, d.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}
