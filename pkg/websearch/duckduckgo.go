package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	duckDuckGoEndpoint = "https://html.duckduckgo.com/html/"
	maxSnippets        = 5
)

// DuckDuckGoProvider scrapes the HTML results page and joins the top snippets.
// It needs no API key.
type DuckDuckGoProvider struct {
	Endpoint string
	Client   *http.Client
}

func NewDuckDuckGoProvider() *DuckDuckGoProvider {
	return &DuckDuckGoProvider{
		Endpoint: duckDuckGoEndpoint,
		Client:   &http.Client{Timeout: 20 * time.Second},
	}
}

func (p *DuckDuckGoProvider) SearchAnswer(ctx context.Context, query string) (string, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; faq-chatbot/1.0)")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("duckduckgo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("duckduckgo error: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse results page: %w", err)
	}

	var snippets []string
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Find(".result__title").Text())
		snippet := strings.TrimSpace(s.Find(".result__snippet").Text())
		if snippet == "" {
			return true
		}
		if title != "" {
			snippet = title + ": " + snippet
		}
		snippets = append(snippets, snippet)
		return len(snippets) < maxSnippets
	})

	return strings.Join(snippets, "\n"), nil
}
