package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"helpdesk/internal/domain"
)

// Gemini generates answers with the Gemini API. The preamble and any
// grounding documents are sent as the system instruction.
type Gemini struct {
	client *genai.Client
}

func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	var cfg *genai.GenerateContentConfig
	if system := systemPrompt(req.Preamble, req.Documents); system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		}
	}
	resp, err := g.client.Models.GenerateContent(
		ctx,
		req.Model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: req.Message}}}},
		cfg,
	)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &APIError{Provider: g.Name(), StatusCode: apiErr.Code, Body: apiErr.Message}
		}
		return "", err
	}
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrMalformedResponse)
	}
	return resp.Text(), nil
}
