package engine

import (
	"regexp"
	"strings"
)

const number = `\d+(?:\.\d+)?`

// achievementRules are tried as one leftmost-first alternation: a phrase beginning at an
// action verb wins over the bare number inside it.
var achievementRules = []string{
	// improved revenue by 25%
	`\b(?:improved|increased|reduced|optimized|achieved|delivered)(?:\s+[a-z]+){0,3}?\s+by\s+` + number + `%`,
	// accuracy of 98%
	`\b(?:accuracy|performance|efficiency|revenue|growth|reduction)\s+of\s+` + number + `%`,
	// led 4 teams
	`\b(?:handled|managed|led)\s+\d+\s*(?:team|project|task)s?\b`,
	`\b` + number + `%`,
	`[$€£]` + number + `[mk]?`,
	`\b\d+\s*(?:years?|months?|users?|customers?|projects?|hours?|items?)\b`,
}

var (
	achievementRE = regexp.MustCompile(`(?i)(?:` + strings.Join(achievementRules, `|`) + `)`)
	specificRE    = regexp.MustCompile(`(?i)\b(?:by|of)\b`)
	impactRE      = regexp.MustCompile(`\d%|[$€£]\d`)
)

// AchievementSignals describes quantifiable outcomes found in a résumé.
type AchievementSignals struct {
	Count int
	// Specific is set when any match is phrased as "<verb> by N" or "<metric> of N".
	Specific bool
	// Impact counts matches carrying a percentage or currency amount.
	Impact int
	// Examples holds the matched phrases in order of appearance.
	Examples []string
}

// ExtractAchievements finds every quantifiable-outcome phrase in normalized text.
func ExtractAchievements(normalized string) AchievementSignals {
	matches := achievementRE.FindAllString(normalized, -1)
	out := AchievementSignals{Count: len(matches), Examples: matches}
	for _, m := range matches {
		if specificRE.MatchString(m) {
			out.Specific = true
		}
		if impactRE.MatchString(m) {
			out.Impact++
		}
	}
	return out
}
