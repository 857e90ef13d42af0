package websearch

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotConfigured = errors.New("web search provider is not configured")

// Provider turns a search query into a best-effort textual answer.
// An empty answer with a nil error means nothing useful was found.
type Provider interface {
	SearchAnswer(ctx context.Context, query string) (string, error)
}

// NewProvider picks a backend by name: "tavily" or "duckduckgo".
func NewProvider(name, tavilyAPIKey string) (Provider, error) {
	switch name {
	case "tavily":
		if tavilyAPIKey == "" {
			return nil, fmt.Errorf("tavily: %w", ErrNotConfigured)
		}
		return NewTavilyProvider(tavilyAPIKey), nil
	case "duckduckgo", "":
		return NewDuckDuckGoProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported web search provider: %s", name)
	}
}
