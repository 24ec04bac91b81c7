package engine

import (
	"fmt"
	"strings"
)

// Score tiers shared by the overall and per-category scores.
const (
	TierCritical  = "Critical"
	TierNeedsWork = "Needs Work"
	TierExcellent = "Excellent"
)

// Tier maps a 0-100 score to its tier.
func Tier(score int) string {
	switch {
	case score <= 50:
		return TierCritical
	case score <= 70:
		return TierNeedsWork
	default:
		return TierExcellent
	}
}

func structureFeedback(score int, missing []Section) string {
	switch score {
	case 100:
		return "All required sections (contact, education, skills, experience) are present and well structured."
	case 90:
		return fmt.Sprintf("Missing 1 section (%s). Add it to complete the résumé.", firstN(sectionNames(missing), 1))
	case 70:
		return fmt.Sprintf("Missing %d sections (%s). Include these for a stronger structure.", len(missing), firstN(sectionNames(missing), 2))
	case 50:
		return fmt.Sprintf("Only 1 section detected. Add at least 2-3 more (e.g., %s) to meet basic standards.", firstN(sectionNames(missing), 2))
	default:
		return "No required sections detected. Add contact, education, skills and experience sections."
	}
}

func contactFeedback(score int, c ContactSignals) string {
	found := channelList(c.Channels)
	switch score {
	case 100:
		return fmt.Sprintf("Excellent contact details with %d items, including %s.", c.Count, found)
	case 95:
		return fmt.Sprintf("Great contact setup with %d items (%s). Consider adding GitHub for extra visibility.", c.Count, found)
	case 85:
		return fmt.Sprintf("Solid contact info with %s (%s). Add %s to strengthen it.", plural(c.Count, "item"), found, firstN(missingCoreChannels(c), 1))
	case 65:
		return fmt.Sprintf("Basic contact info with %s (%s). Include %s for professionalism.", plural(c.Count, "item"), found, firstN(missingCoreChannels(c), 2))
	default:
		return "No contact info found. Add at least an email and a phone number or LinkedIn profile."
	}
}

func skillsFeedback(score int, s SkillCounts) string {
	present := s.NonZeroCategories()
	missing := s.MissingCategories()
	switch score {
	case 100:
		return fmt.Sprintf("Impressive skill set across %d categories (e.g., %s).", len(present), firstN(present, 2))
	case 90:
		return fmt.Sprintf("Strong skills across %d categories. Add expertise in %s or similar.", len(present), firstN(missing, 2))
	case 80:
		return fmt.Sprintf("Good skills in %d categories. Include %s or related skills.", len(present), firstN(missing, 1))
	case 60:
		return fmt.Sprintf("Moderate skills in %d categories. Expand with %s.", len(present), firstN(missing, 2))
	case 40:
		return fmt.Sprintf("Limited skills in %s. Add %s for balance.", plural(len(present), "category"), firstN(missing, 2))
	default:
		return "No skills detected. Add at least 2 categories (e.g., programming, web development)."
	}
}

func experienceFeedback(score int, e ExperienceSignals) string {
	switch score {
	case 100:
		return fmt.Sprintf("Outstanding history: %d dated roles totaling %s. Highlight measurable impact.", e.EntryCount, plural(e.DurationMonths, "month"))
	case 90:
		return fmt.Sprintf("Solid history: %d dated roles covering %s. Add 1 more role or detail the impact.", e.EntryCount, plural(e.DurationMonths, "month"))
	case 80:
		return fmt.Sprintf("Good: 1 dated role covering %s. Include 1-2 more roles or responsibilities.", plural(e.DurationMonths, "month"))
	case 60:
		return fmt.Sprintf("Basic: %s covering %s. Add 1-2 entries with dates and duties.", plural(e.EntryCount, "dated role"), plural(e.DurationMonths, "month"))
	case 40:
		return "Minimal experience detected. Include 1-2 roles with timelines and tasks."
	default:
		return "No work experience found. Add internships or projects with dates."
	}
}

func metricsFeedback(score int, a AchievementSignals) string {
	example := ""
	if len(a.Examples) > 0 {
		example = a.Examples[0]
	}
	switch score {
	case 100:
		return fmt.Sprintf("Exceptional: %d achievements (e.g., %q). Keep showcasing impact.", a.Count, example)
	case 90:
		return fmt.Sprintf("Strong: %d achievements (e.g., %q). Add 1-2 more with percentages.", a.Count, example)
	case 80:
		return fmt.Sprintf("Good: %d achievements (e.g., %q). Include 1-2 more metrics.", a.Count, example)
	case 70:
		return fmt.Sprintf("Decent: 1 achievement detected (%q). Add 1-2 quantifiable results (e.g., \"increased sales by 20%%\").", example)
	case 50:
		return fmt.Sprintf("Basic: %s found. Phrase results as outcomes (e.g., \"led 5 projects\", \"reduced costs by 15%%\").", plural(a.Count, "figure"))
	default:
		return "No achievements detected. Add measurable outcomes (e.g., \"improved efficiency by 30%\")."
	}
}

func missingCoreChannels(c ContactSignals) []string {
	var out []string
	if !c.HasEmail {
		out = append(out, "email")
	}
	if !c.HasPhone {
		out = append(out, "phone")
	}
	if !c.HasLinkedIn {
		out = append(out, "LinkedIn")
	}
	return out
}

func channelList(channels []Channel) string {
	seen := make(map[Channel]struct{}, len(channels))
	var names []string
	for _, ch := range channels {
		if _, ok := seen[ch]; ok {
			continue
		}
		seen[ch] = struct{}{}
		names = append(names, string(ch))
	}
	return strings.Join(names, ", ")
}

func sectionNames(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = string(s)
	}
	return out
}

func firstN(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
