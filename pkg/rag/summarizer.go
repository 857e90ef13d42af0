package rag

import (
	"context"
	"fmt"
	"strings"

	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/pkg/llm"
)

// Summarizer compresses a document context for the answering branches.
type Summarizer struct {
	llmProvider llm.LLMProvider
}

func NewSummarizer(llmProvider llm.LLMProvider) *Summarizer {
	return &Summarizer{llmProvider: llmProvider}
}

// Summarize returns "" for an empty document without calling the model.
func (s *Summarizer) Summarize(ctx context.Context, documentContext string) (string, error) {
	if strings.TrimSpace(documentContext) == "" {
		return "", nil
	}

	summary, err := s.llmProvider.Generate(ctx, fmt.Sprintf(constant.SummarizeDocumentPromptV1, documentContext))
	if err != nil {
		return "", serviceFailure("summarize", err)
	}
	return strings.TrimSpace(summary), nil
}

// cycleSummary computes the summary at most once per request, and only when asked.
type cycleSummary struct {
	summarizer *Summarizer
	document   string
	done       bool
	value      string
}

func (c *cycleSummary) get(ctx context.Context) (string, error) {
	if c.done {
		return c.value, nil
	}
	value, err := c.summarizer.Summarize(ctx, c.document)
	if err != nil {
		return "", err
	}
	c.value, c.done = value, true
	return value, nil
}
