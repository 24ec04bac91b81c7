package engine

import "regexp"

var educationPattern = regexp.MustCompile(`(?i)\b(?:education|degree|bachelor|master|phd|mba|university|college|institute|school|engineering|computer science|information technology|data science)\b`)

// DetectEducation reports whether normalized text mentions any education term.
func DetectEducation(normalized string) bool {
	return educationPattern.MatchString(normalized)
}
