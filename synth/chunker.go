package synth

import (
	"fmt"
	"strings"
)

// ChunkFunc splits one source text into corpus-sized chunks.
type ChunkFunc func(text string) ([]string, error)

// SentenceChunker returns a chunker that groups up to
// maxSentencesPerChunk sentences per chunk. Sentence boundaries are
// approximated by terminal punctuation followed by a space.
func SentenceChunker(maxSentencesPerChunk int) ChunkFunc {
	return func(text string) ([]string, error) {
		if maxSentencesPerChunk <= 0 {
			return nil, fmt.Errorf("max sentences per chunk must be positive")
		}
		if strings.TrimSpace(text) == "" {
			return nil, nil
		}

		text = strings.ReplaceAll(text, "! ", "!|")
		text = strings.ReplaceAll(text, "? ", "?|")
		text = strings.ReplaceAll(text, ". ", ".|")

		var sentences []string
		for _, s := range strings.Split(text, "|") {
			s = strings.TrimSpace(s)
			if s != "" {
				sentences = append(sentences, s)
			}
		}

		var chunks []string
		var current []string
		for _, sentence := range sentences {
			current = append(current, sentence)
			if len(current) >= maxSentencesPerChunk {
				chunks = append(chunks, strings.Join(current, " "))
				current = nil
			}
		}
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
		}
		return chunks, nil
	}
}

// ParagraphChunker returns a chunker that splits on blank lines.
func ParagraphChunker() ChunkFunc {
	return func(text string) ([]string, error) {
		var chunks []string
		for _, para := range strings.Split(text, "\n\n") {
			para = strings.TrimSpace(para)
			if para != "" {
				chunks = append(chunks, para)
			}
		}
		return chunks, nil
	}
}
