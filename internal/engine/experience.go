package engine

import "regexp"

const (
	datePattern      = `(?:\d{1,2}[/-]\d{1,2}[/-]\d{4}|\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4})`
	dateRangePattern = `\b` + datePattern + `\s*[-–]\s*(?:` + datePattern + `|\bpresent\b)`
)

var (
	workVocabularyPattern = regexp.MustCompile(`(?i)\b(?:work experience|professional experience|experience|internship|intern|full-time|contract|remote|senior|junior|lead|manager|engineer|developer|analyst|architect)\b`)
	dateRangeRE           = regexp.MustCompile(`(?i)` + dateRangePattern)
)

// monthsPerDatedLine is the duration credited to each line holding a date range. The
// experience buckets are calibrated against this flat credit, not calendar arithmetic.
const monthsPerDatedLine = 1

// ExperienceSignals describes the work history found in a résumé.
type ExperienceSignals struct {
	HasWorkExperience bool
	// EntryCount is the number of date ranges in the text.
	EntryCount int
	// DurationMonths is the approximate tenure, see monthsPerDatedLine.
	DurationMonths int
}

// ExtractExperience detects role vocabulary and dated work-history entries.
func ExtractExperience(text Text) ExperienceSignals {
	entries := len(dateRangeRE.FindAllStringIndex(text.Normalized, -1))
	out := ExperienceSignals{
		EntryCount:        entries,
		HasWorkExperience: entries > 0 || workVocabularyPattern.MatchString(text.Normalized),
	}
	if entries == 0 {
		return out
	}
	for _, line := range text.Lines {
		if dateRangeRE.MatchString(line) {
			out.DurationMonths += monthsPerDatedLine
		}
	}
	return out
}
