package rag

import (
	"context"
	"fmt"
	"strings"

	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/pkg/llm"
)

// QualityGate judges whether a candidate answer can be shown to the user.
type QualityGate struct {
	llmProvider llm.LLMProvider
}

func NewQualityGate(llmProvider llm.LLMProvider) *QualityGate {
	return &QualityGate{llmProvider: llmProvider}
}

// IsSatisfactory reports false only when the judgment contains "unsatisfactory".
func (g *QualityGate) IsSatisfactory(ctx context.Context, answer string) (bool, error) {
	prompt := fmt.Sprintf(constant.QualityCheckPromptV1, answer)

	judgment, err := g.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		return false, serviceFailure("quality gate", err)
	}
	return !strings.Contains(strings.ToLower(judgment), "unsatisfactory"), nil
}
