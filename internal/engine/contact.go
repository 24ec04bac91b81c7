package engine

import (
	"regexp"
	"strings"
)

// Channel names a way to reach the candidate.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelPhone    Channel = "phone"
	ChannelLinkedIn Channel = "linkedin"
	ChannelGitHub   Channel = "github"
)

type contactRule struct {
	channel Channel
	pattern string
	re      *regexp.Regexp
}

var contactRules = compileContactRules([]contactRule{
	{channel: ChannelEmail, pattern: `(?:\b(?:email|phone|mobile):?\s*)?[\w+\-.]+@[\w+\-.]+\.\w+`},
	{channel: ChannelLinkedIn, pattern: `\blinkedin\.com/in/[\w\-]+`},
	{channel: ChannelGitHub, pattern: `\bgithub\.com/[\w\-]+`},
	{channel: ChannelPhone, pattern: `\+\d{10,12}`},
})

// contactPattern is every rule joined into one alternation, one capture group per rule, so
// a span is attributed to exactly one channel.
var contactPattern = joinRules(contactRules)

func compileContactRules(rules []contactRule) []contactRule {
	for i := range rules {
		rules[i].re = regexp.MustCompile(`(?i)` + rules[i].pattern)
	}
	return rules
}

func joinRules(rules []contactRule) *regexp.Regexp {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = "(" + r.pattern + ")"
	}
	return regexp.MustCompile(`(?i)` + strings.Join(parts, "|"))
}

// ContactSignals describes the contact details found in a résumé.
type ContactSignals struct {
	// Count is the number of distinct contact items matched.
	Count int
	// Channels lists the channel of every distinct item, in order of appearance.
	Channels    []Channel
	HasEmail    bool
	HasPhone    bool
	HasLinkedIn bool
	HasGitHub   bool
}

// ExtractContact detects email, phone, LinkedIn and GitHub references in normalized text.
func ExtractContact(normalized string) ContactSignals {
	var out ContactSignals
	seen := make(map[string]struct{})
	for _, m := range contactPattern.FindAllStringSubmatchIndex(normalized, -1) {
		item := normalized[m[0]:m[1]]
		// "email: a@b.io" and "a@b.io" are the same item.
		item = item[strings.LastIndexAny(item, ": \t")+1:]
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		for g := range contactRules {
			if m[2*(g+1)] >= 0 {
				out.Channels = append(out.Channels, contactRules[g].channel)
				break
			}
		}
	}
	out.Count = len(seen)

	for _, r := range contactRules {
		if !r.re.MatchString(normalized) {
			continue
		}
		switch r.channel {
		case ChannelEmail:
			out.HasEmail = true
		case ChannelPhone:
			out.HasPhone = true
		case ChannelLinkedIn:
			out.HasLinkedIn = true
		case ChannelGitHub:
			out.HasGitHub = true
		}
	}
	return out
}
