package textutil

import "strings"

// ChunkByChars splits text into word-bounded chunks of at most maxChars
// characters. Words are accumulated greedily; a chunk is flushed when
// adding the next word (plus one separator) would exceed the budget.
// A single word longer than maxChars is placed alone in its own chunk.
func ChunkByChars(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	currentLen := 0

	for _, word := range words {
		wordLen := len(word) + 1 // +1 for the separator
		if currentLen+wordLen > maxChars && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{word}
			currentLen = wordLen
		} else {
			current = append(current, word)
			currentLen += wordLen
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// ChunkWordsOverlap splits text into chunks of up to maxWords words,
// where each chunk after the first begins overlap words before the
// previous chunk's end, preserving context across boundaries.
// The start position always moves forward, so degenerate overlap
// values cannot stall the walk.
func ChunkWordsOverlap(text string, maxWords, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if maxWords <= 0 {
		maxWords = len(words)
	}
	if overlap < 0 {
		overlap = 0
	}

	var chunks []string
	start := 0

	for start < len(words) {
		end := start + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))

		if end == len(words) {
			break
		}
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}
