// Package suggestions asks a language model for résumé improvement suggestions.
package suggestions

import (
	"context"
	"errors"
)

// Suggestion is one improvement proposed for a résumé.
type Suggestion struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Before      string `json:"before"`
	After       string `json:"after"`
	Rationale   string `json:"rationale"`
}

// Generator abstracts model providers. Implementations return the raw suggestions
// parsed from the model output; ids are assigned by Service.
type Generator interface {
	Suggest(ctx context.Context, resumeText string) ([]Suggestion, error)
	Name() string
}

var (
	// ErrDisabled is returned when no provider is configured.
	ErrDisabled = errors.New("suggestion provider disabled")
	// ErrMalformedResponse is returned when model output holds no JSON array of suggestions.
	ErrMalformedResponse = errors.New("malformed suggestions response")
)

// Disabled is the Generator used when no provider is configured.
type Disabled struct{}

// Suggest always fails with ErrDisabled.
func (Disabled) Suggest(ctx context.Context, resumeText string) ([]Suggestion, error) {
	return nil, ErrDisabled
}

// Name identifies the provider in logs.
func (Disabled) Name() string { return "none" }

// ModelOf returns the model name of providers that report one, or "".
func ModelOf(g Generator) string {
	if m, ok := g.(interface{ Model() string }); ok {
		return m.Model()
	}
	return ""
}
