package analyses

import (
	"context"
	"sync/atomic"

	"ats-backend/internal/engine"
	"ats-backend/internal/history"
	"ats-backend/internal/suggestions"
)

const sampleResume = `Jane Doe
email: jane@example.com | +14155550123 | linkedin.com/in/janedoe

Experience
Backend Engineer, Initech
Jan 2020 - Dec 2022
Reduced latency by 40% and led 3 projects.

Skills
Go, Python, Docker, Kubernetes, PostgreSQL

Education
Bachelor of Science in Computer Science`

type stubGenerator struct {
	items []suggestions.Suggestion
	err   error
	calls atomic.Int32
}

func (s *stubGenerator) Suggest(ctx context.Context, resumeText string) ([]suggestions.Suggestion, error) {
	s.calls.Add(1)
	return s.items, s.err
}

func (s *stubGenerator) Name() string { return "stub" }

func newTestService(gen suggestions.Generator) *Service {
	return &Service{
		Engine:      engine.New(nil),
		Suggestions: suggestions.NewService(gen, 0),
		History:     history.NewService(history.NewMemoryRepo(), 10),
	}
}
