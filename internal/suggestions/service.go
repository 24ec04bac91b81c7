package suggestions

import (
	"context"
	"fmt"
	"time"

	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/telemetry"
	"ats-backend/internal/shared/util"
)

// FallbackID identifies the record returned when generation fails.
const FallbackID = "error_suggestion"

// Service wraps a Generator with id assignment and a failure fallback.
type Service struct {
	Generator Generator
	MaxChars  int
	Now       func() time.Time
}

// NewService returns a Service over gen, or over Disabled when gen is nil.
func NewService(gen Generator, maxChars int) *Service {
	if gen == nil {
		gen = Disabled{}
	}
	return &Service{Generator: gen, MaxChars: maxChars, Now: time.Now}
}

// Suggest never fails: provider errors collapse into a single "System Error" suggestion
// so callers can always render a response.
func (s *Service) Suggest(ctx context.Context, resumeText string) []Suggestion {
	text := util.TruncateRunes(resumeText, s.maxChars())
	start := s.now()
	items, err := s.Generator.Suggest(ctx, text)
	if err != nil {
		metrics.IncSuggestionsFailed()
		telemetry.Error("suggestions.failed", map[string]any{
			"provider": s.Generator.Name(),
			"error":    err,
		})
		return []Suggestion{Fallback(err)}
	}
	stamp := s.now().UnixMilli()
	out := make([]Suggestion, len(items))
	for i, item := range items {
		if item.ID == "" {
			item.ID = fmt.Sprintf("suggestion_%d_%d", i, stamp)
		}
		out[i] = item
	}
	telemetry.Info("suggestions.generated", map[string]any{
		"provider":    s.Generator.Name(),
		"count":       len(out),
		"duration_ms": s.now().Sub(start).Milliseconds(),
	})
	return out
}

// Fallback builds the suggestion reported in place of a failed generation.
func Fallback(err error) Suggestion {
	return Suggestion{
		ID:          FallbackID,
		Category:    "System Error",
		Title:       "Unable to Generate Suggestions",
		Description: fmt.Sprintf("Failed to generate improvement suggestions: %v", err),
		Rationale:   "Please check your API configuration and try again.",
	}
}

func (s *Service) maxChars() int {
	if s.MaxChars <= 0 {
		return DefaultMaxChars
	}
	return s.MaxChars
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
