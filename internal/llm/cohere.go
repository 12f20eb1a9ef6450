package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	coherecore "github.com/cohere-ai/cohere-go/v2/core"
	cohereoption "github.com/cohere-ai/cohere-go/v2/option"

	"helpdesk/internal/domain"
)

const defaultCohereBaseURL = "https://api.cohere.com"

// CohereConfig configures the Cohere chat client.
type CohereConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Cohere calls the Cohere chat endpoint, which accepts grounding documents
// and a preamble natively.
type Cohere struct {
	client *cohereclient.Client
}

func NewCohere(cfg CohereConfig) *Cohere {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultCohereBaseURL
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	return &Cohere{
		client: cohereclient.NewClient(
			cohereoption.WithToken(cfg.APIKey),
			cohereoption.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
			cohereoption.WithHTTPClient(&http.Client{Timeout: t}),
			cohereoption.WithMaxAttempts(1),
		),
	}
}

func (c *Cohere) Name() string { return "cohere" }

func (c *Cohere) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	chatReq := &cohere.ChatRequest{Message: req.Message}
	if req.Model != "" {
		chatReq.Model = &req.Model
	}
	if req.Preamble != "" {
		chatReq.Preamble = &req.Preamble
	}
	for _, d := range req.Documents {
		chatReq.Documents = append(chatReq.Documents, cohere.ChatDocument{"id": d.ID, "text": d.Text})
	}

	resp, err := c.client.Chat(ctx, chatReq)
	if err != nil {
		var apiErr *coherecore.APIError
		if errors.As(err, &apiErr) {
			return "", &APIError{Provider: c.Name(), StatusCode: apiErr.StatusCode, Body: apiErr.Error()}
		}
		return "", decodeError(err)
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return "", fmt.Errorf("%w: no text", ErrMalformedResponse)
	}
	return resp.Text, nil
}
