package textutil

import "strings"

// SplitSentences splits text on period boundaries, trimming each piece
// and dropping empties. Deliberately simple: the flashcard selector
// only needs roughly sentence-sized pieces, not linguistic accuracy.
func SplitSentences(text string) []string {
	parts := strings.Split(text, ".")
	var sentences []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// FirstSentences returns the first n period-space-delimited sentences
// of text, re-joined with a trailing period. Used as deterministic
// fallback content when a model call fails.
func FirstSentences(text string, n int) string {
	if n <= 0 {
		return ""
	}
	parts := strings.Split(text, ". ")
	if len(parts) > n {
		parts = parts[:n]
	}
	joined := strings.TrimSpace(strings.Join(parts, ". "))
	if joined == "" {
		return ""
	}
	if !strings.HasSuffix(joined, ".") {
		joined += "."
	}
	return joined
}
