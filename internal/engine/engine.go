// Package engine scores résumé text for ATS compatibility. It is a pure function of its
// input and an immutable skill taxonomy: no I/O, no shared mutable state, safe for
// concurrent use.
package engine

import "fmt"

// Category names, in the order they are reported.
const (
	CategoryFormat       = "Resume Format"
	CategoryContact      = "Contact Information"
	CategorySkills       = "Skills"
	CategoryExperience   = "Work Experience"
	CategoryAchievements = "Quantifiable Achievements"
)

// CategoryScore is the score and feedback for one category.
type CategoryScore struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Status   string `json:"status"`
	Feedback string `json:"feedback"`
}

// Summary carries descriptive counts about the analyzed text.
type Summary struct {
	WordCount           int       `json:"wordCount"`
	TechnicalSkillCount int       `json:"technicalSkillCount"`
	PresentSections     []Section `json:"presentSections"`
	MissingSections     []Section `json:"missingSections"`
}

// AnalysisResult is the complete assessment of one résumé.
type AnalysisResult struct {
	OverallScore int             `json:"overallScore"`
	Status       string          `json:"status"`
	Categories   []CategoryScore `json:"categories"`
	Summary      Summary         `json:"summary"`
}

// Engine scores résumés against a taxonomy.
type Engine struct {
	tax *Taxonomy
}

// New returns an Engine using tax, or the built-in taxonomy when tax is nil.
func New(tax *Taxonomy) *Engine {
	if tax == nil {
		tax = MustDefaultTaxonomy()
	}
	return &Engine{tax: tax}
}

// Taxonomy returns the catalog the engine matches against.
func (e *Engine) Taxonomy() *Taxonomy {
	return e.tax
}

// Extract runs every extractor over normalized text.
func (e *Engine) Extract(text Text) Signals {
	return Signals{
		Skills:        MatchSkills(e.tax, text.Normalized),
		Contact:       ExtractContact(text.Normalized),
		Experience:    ExtractExperience(text),
		Education:     DetectEducation(text.Normalized),
		Achievements:  ExtractAchievements(text.Normalized),
		GenericSkills: hasGenericSkills(text.Normalized),
	}
}

// Analyze scores raw résumé text. It returns ErrInvalidInput for empty or non-text input
// and ErrAnalysisIntegrity if a computed result breaks its invariants; a result is only
// returned when scoring completed fully.
func (e *Engine) Analyze(raw string) (AnalysisResult, error) {
	text, err := Normalize(raw)
	if err != nil {
		return AnalysisResult{}, err
	}
	signals := e.Extract(text)
	scores := Score(signals)
	present, missing := signals.Sections()
	overall := Overall(scores)

	result := AnalysisResult{
		OverallScore: overall,
		Status:       Tier(overall),
		Categories: []CategoryScore{
			category(CategoryFormat, scores.Structure, structureFeedback(scores.Structure, missing)),
			category(CategoryContact, scores.Contact, contactFeedback(scores.Contact, signals.Contact)),
			category(CategorySkills, scores.Keywords, skillsFeedback(scores.Keywords, signals.Skills)),
			category(CategoryExperience, scores.Experience, experienceFeedback(scores.Experience, signals.Experience)),
			category(CategoryAchievements, scores.Metrics, metricsFeedback(scores.Metrics, signals.Achievements)),
		},
		Summary: Summary{
			WordCount:           text.WordCount,
			TechnicalSkillCount: signals.Skills.Total,
			PresentSections:     present,
			MissingSections:     missing,
		},
	}
	if err := verify(result); err != nil {
		return AnalysisResult{}, err
	}
	return result, nil
}

func category(name string, score int, feedback string) CategoryScore {
	return CategoryScore{Name: name, Score: score, Status: Tier(score), Feedback: feedback}
}

func verify(r AnalysisResult) error {
	if r.OverallScore < 0 || r.OverallScore > 100 {
		return fmt.Errorf("%w: overall score %d out of range", ErrAnalysisIntegrity, r.OverallScore)
	}
	if len(r.Categories) != 5 {
		return fmt.Errorf("%w: %d categories", ErrAnalysisIntegrity, len(r.Categories))
	}
	for _, c := range r.Categories {
		if c.Score < 0 || c.Score > 100 {
			return fmt.Errorf("%w: %s score %d out of range", ErrAnalysisIntegrity, c.Name, c.Score)
		}
	}
	seen := make(map[Section]int, len(RequiredSections))
	for _, s := range r.Summary.PresentSections {
		seen[s]++
	}
	for _, s := range r.Summary.MissingSections {
		seen[s]++
	}
	if len(seen) != len(RequiredSections) {
		return fmt.Errorf("%w: sections do not cover the required set", ErrAnalysisIntegrity)
	}
	for _, s := range RequiredSections {
		if seen[s] != 1 {
			return fmt.Errorf("%w: section %s reported %d times", ErrAnalysisIntegrity, s, seen[s])
		}
	}
	return nil
}
