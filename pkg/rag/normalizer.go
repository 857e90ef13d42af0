package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/pkg/llm"
)

// Normalizer rewrites a raw query into a standalone question. The rewrite is
// used for reasoning only; the raw text is what gets logged and curated.
type Normalizer struct {
	llmProvider   llm.LLMProvider
	abbreviations map[string]string
}

func NewNormalizer(llmProvider llm.LLMProvider, abbreviations map[string]string) *Normalizer {
	return &Normalizer{
		llmProvider:   llmProvider,
		abbreviations: abbreviations,
	}
}

// Normalize falls back to the raw query when the model returns nothing usable.
func (n *Normalizer) Normalize(ctx context.Context, raw, history string) (string, error) {
	prompt := fmt.Sprintf(constant.NormalizeQueryPromptV1,
		n.abbreviationTable(),
		escapeQuotes(history),
		escapeQuotes(raw),
	)

	rewritten, err := n.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		return "", serviceFailure("normalize", err)
	}

	rewritten = cleanRewrite(rewritten)
	if rewritten == "" {
		return raw, nil
	}
	return rewritten, nil
}

func (n *Normalizer) abbreviationTable() string {
	keys := make([]string, 0, len(n.abbreviations))
	for k := range n.abbreviations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var table strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&table, "  %s = %s\n", k, n.abbreviations[k])
	}
	return strings.TrimRight(table.String(), "\n")
}

func cleanRewrite(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "Rewritten:")
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "\"")
	return strings.TrimSpace(text)
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", `\n`), `"`, `\"`)
}
