package analyses

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ats-backend/internal/engine"
	"ats-backend/internal/extract"
	"ats-backend/internal/history"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/telemetry"
	"ats-backend/internal/shared/util"
	"ats-backend/internal/suggestions"
)

// DefaultMaxChars bounds the text handed to the engine.
const DefaultMaxChars = 50000

// Service runs résumé analyses and the operations built around them.
type Service struct {
	Engine      *engine.Engine
	Suggestions *suggestions.Service
	History     *history.Service
	MaxChars    int
}

// Analyze scores text after truncating it to MaxChars runes.
func (s *Service) Analyze(ctx context.Context, text string) (engine.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return engine.AnalysisResult{}, err
	}
	metrics.IncAnalysisStarted()
	start := time.Now()

	truncated := util.TruncateRunes(text, s.maxChars())
	result, err := s.Engine.Analyze(truncated)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidInput):
			metrics.IncAnalysisRejected()
		default:
			metrics.IncAnalysisFailed()
			telemetry.Error("analysis.failed", map[string]any{
				"error":      err,
				"text_chars": len(truncated),
			})
		}
		return engine.AnalysisResult{}, err
	}

	elapsed := time.Since(start)
	metrics.IncAnalysisCompleted(result.OverallScore)
	metrics.ObserveAnalysisDurationMs(float64(elapsed.Microseconds()) / 1000.0)
	telemetry.Debug("analysis.completed", map[string]any{
		"overall_score": result.OverallScore,
		"word_count":    result.Summary.WordCount,
		"truncated":     len(truncated) < len(text),
		"duration_ms":   elapsed.Milliseconds(),
	})
	return result, nil
}

// Suggest returns improvement suggestions for text. Provider failures surface as a
// fallback suggestion, never as an error.
func (s *Service) Suggest(ctx context.Context, text string) ([]suggestions.Suggestion, error) {
	if strings.TrimSpace(text) == "" {
		return nil, engine.ErrInvalidInput
	}
	return s.Suggestions.Suggest(ctx, text), nil
}

// Review analyzes text and generates suggestions concurrently. When req.Save is set the
// analysis is recorded in the owner's history.
func (s *Service) Review(ctx context.Context, ownerID string, req ReviewRequest) (Review, error) {
	if req.Save && (s.History == nil || strings.TrimSpace(ownerID) == "") {
		return Review{}, history.ErrMissingOwner
	}

	var out Review
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.Analyze(gctx, req.ResumeText)
		if err != nil {
			return err
		}
		out.Analysis = res
		return nil
	})
	g.Go(func() error {
		items, err := s.Suggest(gctx, req.ResumeText)
		if err != nil {
			return err
		}
		out.Suggestions = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return Review{}, err
	}

	if req.Save {
		entry, err := s.History.Save(ctx, ownerID, req.FileName, out.Analysis)
		if err != nil {
			return Review{}, err
		}
		out.HistoryID = entry.ID
	}
	return out, nil
}

// ParseFile extracts text from an uploaded file.
func (s *Service) ParseFile(ctx context.Context, data []byte, mimeType, fileName string) (ParsedFile, error) {
	effective := extract.DetectMimeType(mimeType, fileName, data)
	text, err := extract.ExtractTextFromBytes(ctx, data, effective, fileName)
	if err != nil {
		metrics.IncFileParseFailed()
		telemetry.Info("file.parse_failed", map[string]any{
			"file_name": fileName,
			"mime_type": effective,
			"error":     err,
		})
		return ParsedFile{}, err
	}
	if strings.TrimSpace(text) == "" {
		metrics.IncFileParseFailed()
		return ParsedFile{}, ErrEmptyDocument
	}
	return ParsedFile{
		Text:      text,
		FileName:  fileName,
		MimeType:  effective,
		WordCount: len(strings.Fields(text)),
	}, nil
}

func (s *Service) maxChars() int {
	if s.MaxChars <= 0 {
		return DefaultMaxChars
	}
	return s.MaxChars
}
