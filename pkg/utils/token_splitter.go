package utils

import (
	"log"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// approxCharsPerToken sizes the character fallback when no encoding is available.
const approxCharsPerToken = 4

// TextSplitter cuts a document into fragments for indexing.
type TextSplitter interface {
	Split(text string) []string
}

// TokenSplitter windows text by cl100k_base tokens. Without an encoding it
// falls back to SplitText with an equivalent character budget.
type TokenSplitter struct {
	encoding  *tiktoken.Tiktoken
	chunkSize int
	overlap   int
}

func NewTokenSplitter(chunkSize, overlap int) *TokenSplitter {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		log.Printf("[WARN] tiktoken encoding unavailable, using character splitter: %v", err)
		encoding = nil
	}
	return &TokenSplitter{
		encoding:  encoding,
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

func (s *TokenSplitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if s.encoding == nil {
		return SplitText(text, s.chunkSize*approxCharsPerToken, s.overlap*approxCharsPerToken)
	}

	tokens := s.encoding.Encode(text, nil, nil)
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) <= s.chunkSize {
		return []string{text}
	}

	step := s.chunkSize - s.overlap
	if step <= 0 {
		step = s.chunkSize
	}

	var chunks []string
	for i := 0; i < len(tokens); i += step {
		end := i + s.chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, s.encoding.Decode(tokens[i:end]))
		if end == len(tokens) {
			break
		}
	}
	return chunks
}
