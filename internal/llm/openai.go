package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"helpdesk/internal/domain"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIConfig configures the OpenAI-compatible chat client.
type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// OpenAI is an OpenAI-compatible chat completions client. Grounding
// documents are folded into the system message.
type OpenAI struct {
	client *openai.Client
}

func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenAIBaseURL
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	clientCfg.HTTPClient = &http.Client{Timeout: t}
	return &OpenAI{client: openai.NewClientWithConfig(clientCfg)}
}

func (c *OpenAI) Name() string { return "openai" }

func (c *OpenAI) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	var msgs []openai.ChatCompletionMessage
	if system := systemPrompt(req.Preamble, req.Documents); system != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Message})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: msgs,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &APIError{Provider: c.Name(), StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", &APIError{Provider: c.Name(), StatusCode: reqErr.HTTPStatusCode, Body: string(reqErr.Body)}
		}
		return "", decodeError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
