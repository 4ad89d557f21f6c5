package chunk

import "strings"

// DefaultMaxChunkSize is the character budget for one LLM call's input.
const DefaultMaxChunkSize = 6000

// Split breaks text into pieces no longer than maxChunkSize characters
// without splitting a word. A single word longer than the budget becomes
// its own chunk. Joining the output with single spaces reproduces the
// whitespace-normalized input.
func Split(text string, maxChunkSize int) []string {
	words := strings.Fields(text)

	var chunks []string
	var current []string
	currentSize := 0

	for _, word := range words {
		// +1 accounts for the joining space
		if currentSize+len(word)+1 > maxChunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{word}
			currentSize = len(word)
		} else {
			current = append(current, word)
			currentSize += len(word) + 1
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
