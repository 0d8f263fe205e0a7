package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitSentences splits text after '.', '!' or '?' followed by whitespace.
// The whitespace between sentences is dropped.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
		default:
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j == len(runes) {
			continue
		}
		sentences = append(sentences, string(runes[start:i+1]))
		start = j
		i = j - 1
	}
	sentences = append(sentences, string(runes[start:]))
	return sentences
}

// Split groups sentences greedily into chunks of at most maxChars characters,
// joining sentences inside a chunk with a single space. A sentence longer than
// maxChars is never cut and forms its own oversized chunk. Empty text yields
// no chunks.
func Split(text string, maxChars int) []string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var (
		chunks  []string
		current strings.Builder
		size    int
	)
	for _, sentence := range sentences {
		n := utf8.RuneCountInString(sentence)
		if size > 0 && size+1+n > maxChars {
			chunks = append(chunks, current.String())
			current.Reset()
			size = 0
		}
		if size > 0 {
			current.WriteByte(' ')
			size++
		}
		current.WriteString(sentence)
		size += n
	}
	if size > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// EstimateTokens approximates a model token count as one token per four
// characters. It is not real tokenization.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}

// WordCount returns the number of whitespace-delimited tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
