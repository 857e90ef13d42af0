package factory

import (
	"fmt"

	"faq-chatbot-be/pkg/llm"
	"faq-chatbot-be/pkg/llm/anthropic"
	"faq-chatbot-be/pkg/llm/ollama"
	"faq-chatbot-be/pkg/llm/openai"
)

// ProviderConfig carries everything a provider constructor might need.
type ProviderConfig struct {
	Provider      string // "ollama", "openai", "anthropic"
	Model         string
	OllamaBaseURL string
	OpenAIKey     string
	OpenAIBaseURL string
	AnthropicKey  string
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return openai.NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.Model), nil
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, fmt.Errorf("anthropic provider requires ANTHROPIC_API_KEY")
		}
		return anthropic.NewAnthropicProvider(cfg.AnthropicKey, "", cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
