package textutil

import (
	"regexp"
	"strings"
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// SplitSentences splits free text into trimmed sentence fragments.
// Empty fragments are dropped.
func SplitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// Truncate caps text at max runes and appends "..." when content was cut.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// TitleCase capitalizes the first letter of each whitespace-separated word,
// lowercasing the rest.
func TitleCase(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// ContainsAny reports whether the lowercased text contains any of the
// given lowercase keywords.
func ContainsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
