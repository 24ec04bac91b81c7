package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Text is the per-call view of a résumé used by every extractor.
type Text struct {
	// Normalized is lowercased with whitespace runs collapsed to single spaces.
	Normalized string
	// Lines holds the trimmed, non-empty lines of the original input, case preserved.
	Lines     []string
	WordCount int
}

// Normalize validates raw résumé text and derives its normalized forms.
func Normalize(raw string) (Text, error) {
	if raw == "" {
		return Text{}, fmt.Errorf("%w: text is empty", ErrInvalidInput)
	}
	if !utf8.ValidString(raw) {
		return Text{}, fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidInput)
	}

	words := strings.Fields(raw)
	if len(words) == 0 {
		return Text{}, fmt.Errorf("%w: text contains only whitespace", ErrInvalidInput)
	}

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return Text{
		Normalized: strings.ToLower(strings.Join(words, " ")),
		Lines:      lines,
		WordCount:  len(words),
	}, nil
}
