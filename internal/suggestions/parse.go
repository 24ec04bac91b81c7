package suggestions

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	objectArrayRE = regexp.MustCompile(`\[\s*\{[\s\S]*\}\s*\]`)
	codeBlockRE   = regexp.MustCompile("```(?:json)?([\\s\\S]*?)```")
)

// ParseSuggestions extracts the JSON array of suggestions from raw model output. It accepts
// a bare array, an array wrapped in prose, or an array inside a fenced code block.
func ParseSuggestions(raw string) ([]Suggestion, error) {
	text := raw
	if m := objectArrayRE.FindString(raw); m != "" {
		text = m
	} else if m := codeBlockRE.FindStringSubmatch(raw); len(m) == 2 {
		text = m[1]
	}
	text = strings.TrimSpace(text)
	if len(text) < 2 {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		start := strings.Index(text, "[")
		end := strings.LastIndex(text, "]")
		if start == -1 || end <= start {
			return nil, fmt.Errorf("%w: no JSON array found", ErrMalformedResponse)
		}
		text = text[start : end+1]
	}

	var out []Suggestion
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out == nil {
		out = []Suggestion{}
	}
	return out, nil
}
