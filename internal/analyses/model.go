package analyses

import (
	"ats-backend/internal/engine"
	"ats-backend/internal/suggestions"
)

// ReviewRequest asks for an analysis plus suggestions, optionally saved to history.
type ReviewRequest struct {
	ResumeText string
	FileName   string
	Save       bool
}

// Review combines the deterministic analysis with model suggestions.
type Review struct {
	Analysis    engine.AnalysisResult    `json:"analysis"`
	Suggestions []suggestions.Suggestion `json:"suggestions"`
	HistoryID   string                   `json:"historyId,omitempty"`
}

// ParsedFile is the text extracted from an upload.
type ParsedFile struct {
	Text      string `json:"text"`
	FileName  string `json:"fileName"`
	MimeType  string `json:"mimeType"`
	WordCount int    `json:"wordCount"`
}
