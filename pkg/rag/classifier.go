package rag

import (
	"context"
	"fmt"

	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/pkg/llm"
)

// Classifier labels a query against the conversation and the document.
type Classifier struct {
	llmProvider llm.LLMProvider
}

func NewClassifier(llmProvider llm.LLMProvider) *Classifier {
	return &Classifier{llmProvider: llmProvider}
}

// Classify issues one generation call. There is no local fallback when it fails.
func (c *Classifier) Classify(ctx context.Context, query, history, documentContext string) (Label, error) {
	prompt := fmt.Sprintf(constant.ClassifyQueryPromptV1, documentContext, history, query)

	raw, err := c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		return "", serviceFailure("classify", err)
	}
	return ParseLabel(raw), nil
}
