package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"faq-chatbot-be/internal/bootstrap"
	"faq-chatbot-be/internal/config"
	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/pkg/document"
	"faq-chatbot-be/pkg/rag"
	"faq-chatbot-be/pkg/websearch"

	"github.com/fatih/color"
)

const docIndex = "simulation"

// memoryStore keeps fragments per namespace for the lifetime of the run.
type memoryStore struct {
	mu         sync.Mutex
	namespaces map[string][]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{namespaces: make(map[string][]string)}
}

func (s *memoryStore) Insert(_ context.Context, texts []string, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.namespaces[namespace] = append(s.namespaces[namespace], texts...)
	return nil
}

func (s *memoryStore) RetrieveAllText(_ context.Context, indexID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.namespaces[indexID], "\n\n"), nil
}

func main() {
	docPath := flag.String("doc", "", "document to answer from (txt, md, csv, json, html)")
	flag.Parse()
	if *docPath == "" {
		log.Fatal("usage: simulation -doc <path>")
	}

	cfg := config.Load()

	raw, err := os.ReadFile(*docPath)
	if err != nil {
		log.Fatalf("Failed to read document: %v", err)
	}
	text, err := document.Extract(filepath.Base(*docPath), raw)
	if err != nil {
		log.Fatalf("Failed to extract document: %v", err)
	}

	llmProvider, err := bootstrap.NewLLMProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to build LLM provider: %v", err)
	}
	search, err := websearch.NewProvider(cfg.Ai.WebSearchProvider, cfg.Keys.Tavily)
	if err != nil {
		log.Fatalf("Failed to build web search provider: %v", err)
	}

	store := newMemoryStore()
	ctx := context.Background()
	_ = store.Insert(ctx, []string{text}, docIndex)

	engine := rag.NewEngine(llmProvider, search, store, logger.NewIsolatedLogger(cfg.App.RagLogFilePath))

	header := color.New(color.FgCyan, color.Bold)
	userColor := color.New(color.FgGreen)
	labelColor := color.New(color.FgYellow)
	errColor := color.New(color.FgRed)

	header.Printf("=== FAQ Chatbot Simulation (%s / %s) ===\n", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	fmt.Println("Type a question, or 'exit' to quit.")

	var history []string
	scanner := bufio.NewScanner(os.Stdin)
	for {
		userColor.Print("\nUSER: ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" {
			break
		}

		documentContext, _ := store.RetrieveAllText(ctx, docIndex)

		start := time.Now()
		result, err := engine.Handle(ctx, rag.Query{
			Raw:             query,
			History:         strings.Join(history, "\n"),
			DocumentContext: documentContext,
		})
		if err != nil {
			errColor.Printf("Error: %v\n", err)
			continue
		}

		labelColor.Printf("[%s] rewritten: %q (%v)\n", result.Label, result.RewrittenQuery, time.Since(start).Round(time.Millisecond))
		fmt.Printf("AI: %s\n", result.Answer)

		history = append(history, "user: "+query, "assistant: "+result.Answer)
	}

	if deferred, _ := store.RetrieveAllText(ctx, constant.NamespaceNewQueries); deferred != "" {
		header.Println("\n--- Deferred queries ---")
		fmt.Println(deferred)
	}
}
