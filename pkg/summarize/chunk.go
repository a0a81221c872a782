package summarize

import (
	"strings"
	"unicode/utf8"
)

const (
	// chunkThreshold is the input length beyond which text is split.
	chunkThreshold = 12000
	// chunkSize is the upper bound for a single chunk.
	chunkSize = 8000
)

// SplitChunks splits text at sentence boundaries into chunks of at most
// chunkSize bytes. Short input comes back as a single chunk.
func SplitChunks(text string) []string {
	if len(text) <= chunkThreshold {
		return []string{text}
	}

	sentences := splitSentences(text)
	var chunks []string
	var current strings.Builder

	for _, sentence := range sentences {
		if current.Len() > 0 && current.Len()+len(sentence) > chunkSize {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		// A single oversized sentence still becomes its own chunk.
		current.WriteString(sentence)
	}
	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}

// splitSentences cuts text after sentence-ending punctuation followed by
// whitespace. The terminator stays with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			if i+1 == len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
				sentences = append(sentences, string(runes[start:i+1])+" ")
				start = i + 1
			}
		}
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

// truncate shortens a string to at most max bytes without splitting a rune.
func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	truncated := value[:max]
	for !utf8.ValidString(truncated) {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated
}
