package engine

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// genericSkillPattern catches methodology terms that count as a skills section even when
// no catalog keyword is present.
var genericSkillPattern = regexp.MustCompile(`\b(?:agile|scrum|devops|cloud|machine learning|deep learning|data analysis|problem-solving|team leadership|communication)\b`)

// CategoryCount is the number of keyword hits for one taxonomy category.
type CategoryCount struct {
	Category string
	Count    int
}

// SkillCounts is the output of the taxonomy matcher.
type SkillCounts struct {
	ByCategory []CategoryCount
	// Total is the sum of all category counts.
	Total int
	// Diversity is the number of distinct keywords found at least once.
	Diversity int
}

// NonZeroCategories returns the categories with at least one hit, in catalog order.
func (s SkillCounts) NonZeroCategories() []string {
	var out []string
	for _, c := range s.ByCategory {
		if c.Count > 0 {
			out = append(out, c.Category)
		}
	}
	return out
}

// MissingCategories returns the categories without hits, in catalog order.
func (s SkillCounts) MissingCategories() []string {
	var out []string
	for _, c := range s.ByCategory {
		if c.Count == 0 {
			out = append(out, c.Category)
		}
	}
	return out
}

// MatchSkills counts whole-phrase keyword occurrences of every taxonomy category in
// normalized text.
func MatchSkills(tax *Taxonomy, normalized string) SkillCounts {
	counts := SkillCounts{ByCategory: make([]CategoryCount, 0, tax.Len())}
	found := make(map[string]struct{})
	for _, c := range tax.categories {
		total := 0
		for _, kw := range c.Keywords {
			n := countPhrase(normalized, kw)
			if n > 0 {
				found[kw] = struct{}{}
			}
			total += n
		}
		counts.ByCategory = append(counts.ByCategory, CategoryCount{Category: c.Name, Count: total})
		counts.Total += total
	}
	counts.Diversity = len(found)
	return counts
}

// hasGenericSkills reports whether normalized text names a methodology-level skill.
func hasGenericSkills(normalized string) bool {
	return genericSkillPattern.MatchString(normalized)
}

// countPhrase counts non-overlapping literal occurrences of phrase in text that are not
// adjacent to a word character on either side.
func countPhrase(text, phrase string) int {
	if phrase == "" {
		return 0
	}
	n := 0
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], phrase)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(phrase)
		if !wordBefore(text, start) && !wordAfter(text, end) {
			n++
			offset = end
			continue
		}
		offset = start + 1
	}
	return n
}

func wordBefore(text string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return isWordRune(r)
}

func wordAfter(text string, i int) bool {
	if i >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return isWordRune(r)
}

// isWordRune treats letters and digits of any script as word characters, so "r" does not
// match inside "résumé".
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
