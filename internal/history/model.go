package history

import (
	"time"

	"ats-backend/internal/engine"
)

// Score range labels used by the history sidebar.
const (
	RangeWarning   = "Warning"
	RangeGood      = "Good"
	RangeExcellent = "Excellent"

	DefaultFileName = "Untitled Resume"
)

// ScoreSummary holds the headline numbers of an entry. BestScore is the highest overall
// score across the owner's history at the time of the latest save.
type ScoreSummary struct {
	OverallScore      int    `json:"overallScore"`
	OverallScoreRange string `json:"overallScoreRange"`
	BestScore         int    `json:"bestScore"`
	BestScoreRange    string `json:"bestScoreRange"`
}

// Entry is one saved analysis.
type Entry struct {
	ID         string                `json:"id"`
	OwnerID    string                `json:"-"`
	FileName   string                `json:"fileName"`
	CreatedAt  time.Time             `json:"timestamp"`
	IsFavorite bool                  `json:"isFavorite"`
	Score      ScoreSummary          `json:"score"`
	Analysis   engine.AnalysisResult `json:"fullAnalysis"`
}

// Export is the downloadable form of an owner's history.
type Export struct {
	ExportedAt time.Time `json:"exportedAt"`
	Count      int       `json:"count"`
	Items      []Entry   `json:"items"`
}

// ScoreRange buckets a score for display.
func ScoreRange(score int) string {
	switch {
	case score <= 60:
		return RangeWarning
	case score <= 80:
		return RangeGood
	default:
		return RangeExcellent
	}
}

func withBest(e Entry, best int) Entry {
	e.Score.BestScore = best
	e.Score.BestScoreRange = ScoreRange(best)
	return e
}
