package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ats-backend/internal/engine"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/telemetry"
	"ats-backend/internal/shared/util"
)

const (
	DefaultMaxItems = 50
	maxFileNameLen  = 255
)

// Service implements the analysis history operations.
type Service struct {
	Repo     Repo
	MaxItems int
	Now      func() time.Time
	NewID    func() string
}

// NewService constructs a Service over repo keeping at most maxItems entries per owner.
func NewService(repo Repo, maxItems int) *Service {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &Service{Repo: repo, MaxItems: maxItems, Now: time.Now, NewID: uuid.NewString}
}

// Save records an analysis for owner and returns the stored entry.
func (s *Service) Save(ctx context.Context, ownerID, fileName string, analysis engine.AnalysisResult) (Entry, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Entry{}, ErrMissingOwner
	}
	if analysis.OverallScore < 0 || analysis.OverallScore > 100 || len(analysis.Categories) == 0 {
		return Entry{}, ErrInvalidAnalysis
	}
	fileName, err := util.SanitizeFileName(fileName)
	if err != nil {
		fileName = DefaultFileName
	}
	fileName = util.TruncateRunes(fileName, maxFileNameLen)

	entry := Entry{
		ID:        s.NewID(),
		OwnerID:   ownerID,
		FileName:  fileName,
		CreatedAt: s.Now().UTC(),
		Score: ScoreSummary{
			OverallScore:      analysis.OverallScore,
			OverallScoreRange: ScoreRange(analysis.OverallScore),
		},
		Analysis: analysis,
	}
	saved, err := s.Repo.Save(ctx, entry, s.MaxItems)
	if err != nil {
		return Entry{}, fmt.Errorf("save history: %w", err)
	}
	metrics.IncHistorySaved()
	telemetry.Info("history.saved", map[string]any{
		"owner_id":      ownerID,
		"history_id":    saved.ID,
		"overall_score": saved.Score.OverallScore,
		"best_score":    saved.Score.BestScore,
	})
	return saved, nil
}

// List returns the owner's history, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Entry, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrMissingOwner
	}
	return s.Repo.List(ctx, ownerID)
}

// Get returns one entry of the owner's history.
func (s *Service) Get(ctx context.Context, ownerID, id string) (Entry, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Entry{}, ErrMissingOwner
	}
	if _, err := uuid.Parse(id); err != nil {
		return Entry{}, ErrNotFound
	}
	return s.Repo.Get(ctx, ownerID, id)
}

// ToggleFavorite flips the favorite flag of an entry.
func (s *Service) ToggleFavorite(ctx context.Context, ownerID, id string) (Entry, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Entry{}, ErrMissingOwner
	}
	if _, err := uuid.Parse(id); err != nil {
		return Entry{}, ErrNotFound
	}
	return s.Repo.ToggleFavorite(ctx, ownerID, id)
}

// Delete removes one entry.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if strings.TrimSpace(ownerID) == "" {
		return ErrMissingOwner
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, ownerID, id)
}

// Clear removes the owner's whole history and reports how many entries were dropped.
func (s *Service) Clear(ctx context.Context, ownerID string) (int, error) {
	if strings.TrimSpace(ownerID) == "" {
		return 0, ErrMissingOwner
	}
	n, err := s.Repo.Clear(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	telemetry.Info("history.cleared", map[string]any{"owner_id": ownerID, "removed": n})
	return n, nil
}

// Export returns the owner's history as a download document together with its file name.
func (s *Service) Export(ctx context.Context, ownerID string) (Export, string, error) {
	items, err := s.List(ctx, ownerID)
	if err != nil {
		return Export{}, "", err
	}
	now := s.Now().UTC()
	doc := Export{ExportedAt: now, Count: len(items), Items: items}
	name := fmt.Sprintf("resume_analysis_history_%s.json", now.Format("20060102T150405Z"))
	return doc, name, nil
}
