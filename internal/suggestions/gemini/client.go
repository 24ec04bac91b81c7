// Package gemini implements suggestions.Generator over the Google GenAI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"ats-backend/internal/suggestions"
)

const DefaultModel = "gemini-2.5-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client wraps the GenAI models service.
type Client struct {
	models   contentGenerator
	model    string
	maxChars int
}

// NewClient creates a Client configured for the Gemini API backend.
func NewClient(ctx context.Context, apiKey, model string, maxChars int) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newClient(client.Models, model, maxChars), nil
}

func newClient(models contentGenerator, model string, maxChars int) *Client {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	return &Client{models: models, model: model, maxChars: maxChars}
}

// Name identifies the provider in logs.
func (c *Client) Name() string { return "gemini" }

// Model reports the configured model.
func (c *Client) Model() string { return c.model }

// Suggest sends the suggestion prompt and parses the returned JSON array.
func (c *Client) Suggest(ctx context.Context, resumeText string) ([]suggestions.Suggestion, error) {
	if c == nil || c.models == nil {
		return nil, errors.New("gemini client is not initialized")
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.3),
		ResponseMIMEType: "application/json",
	}
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(suggestions.BuildPrompt(resumeText, c.maxChars)), cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(strings.TrimSpace(part.Text))
		}
	}
	output := builder.String()
	if output == "" {
		return nil, errors.New("gemini api returned empty response")
	}
	return suggestions.ParseSuggestions(output)
}

var _ suggestions.Generator = (*Client)(nil)
