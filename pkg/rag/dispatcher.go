package rag

import (
	"context"
	"fmt"
	"strings"

	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/pkg/knowledge"
	"faq-chatbot-be/pkg/llm"
	"faq-chatbot-be/pkg/rag/prompt"
	"faq-chatbot-be/pkg/websearch"
)

const dispatcherModule = "rag.dispatcher"

// Request is everything a branch may need. Query is the rewritten question;
// RawQuery is what the user typed and is what curation writes store.
type Request struct {
	RawQuery        string
	Query           string
	History         string
	DocumentContext string
}

func (r Request) original() string {
	if r.RawQuery != "" {
		return r.RawQuery
	}
	return r.Query
}

// Dispatcher runs one response strategy per label. Each invocation writes to
// the knowledge store at most once.
type Dispatcher struct {
	llmProvider llm.LLMProvider
	search      websearch.Provider
	store       knowledge.Store
	gate        *QualityGate
	summarizer  *Summarizer
	logger      logger.ILogger
}

func NewDispatcher(
	llmProvider llm.LLMProvider,
	search websearch.Provider,
	store knowledge.Store,
	gate *QualityGate,
	summarizer *Summarizer,
	log logger.ILogger,
) *Dispatcher {
	return &Dispatcher{
		llmProvider: llmProvider,
		search:      search,
		store:       store,
		gate:        gate,
		summarizer:  summarizer,
		logger:      log,
	}
}

func (d *Dispatcher) Respond(ctx context.Context, label Label, req Request) (string, error) {
	summary := &cycleSummary{summarizer: d.summarizer, document: req.DocumentContext}

	switch label {
	case LabelUnrelated:
		return d.respondUnrelated(ctx, req, summary)
	case LabelGreeting:
		return d.respondGreeting(ctx, req)
	case LabelNeedsWebSearch:
		return d.respondWithWebSearch(ctx, req, summary)
	case LabelFollowUp:
		return d.respondFromDocument(ctx, req, summary, prompt.FollowUp)
	default:
		return d.respondFromDocument(ctx, req, summary, prompt.DirectAnswer)
	}
}

func (d *Dispatcher) respondUnrelated(ctx context.Context, req Request, summary *cycleSummary) (string, error) {
	docSummary, err := summary.get(ctx)
	if err != nil {
		return "", err
	}

	verdict, err := d.llmProvider.Generate(ctx,
		fmt.Sprintf(constant.RelatednessCheckPromptV1, docSummary, req.Query),
		llm.WithTemperature(0),
	)
	if err != nil {
		return "", serviceFailure("relatedness check", err)
	}

	if !strings.Contains(strings.ToLower(verdict), "yes") {
		d.logger.Info(dispatcherModule, "Query rejected as unrelated", map[string]interface{}{
			"query": req.original(),
		})
		return constant.RejectionAnswer, nil
	}
	return d.deferQuery(ctx, req)
}

func (d *Dispatcher) respondGreeting(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.History) == "" {
		return constant.GenericGreeting, nil
	}

	reply, err := d.llmProvider.Generate(ctx, fmt.Sprintf(constant.GreetingPromptV1, req.History, req.Query))
	if err != nil {
		return "", serviceFailure("greeting", err)
	}
	return reply, nil
}

func (d *Dispatcher) respondWithWebSearch(ctx context.Context, req Request, summary *cycleSummary) (string, error) {
	docSummary, err := summary.get(ctx)
	if err != nil {
		return "", err
	}

	searchQuery, err := d.llmProvider.Generate(ctx,
		fmt.Sprintf(constant.WebQueryRewritePromptV1, docSummary, req.Query),
		llm.WithTemperature(0),
	)
	if err != nil {
		return "", serviceFailure("web query rewrite", err)
	}
	searchQuery = strings.Trim(strings.TrimSpace(searchQuery), "\"")
	if searchQuery == "" {
		searchQuery = req.Query
	}

	webAnswer, err := d.search.SearchAnswer(ctx, searchQuery)
	if err != nil {
		d.logger.Warn(dispatcherModule, "Web search failed, continuing without web information", map[string]interface{}{
			"search_query": searchQuery,
			"error":        err.Error(),
		})
		webAnswer = ""
	}

	answer, err := d.llmProvider.Generate(ctx,
		prompt.Combined(req.Query, webAnswer, docSummary, req.History),
		llm.WithSystemInstruction(constant.CombinedAnswerSystemInstruction),
	)
	if err != nil {
		return "", serviceFailure("combined answer", err)
	}
	answer = strings.TrimSpace(answer)

	if answer == "" {
		return d.deferQuery(ctx, req)
	}

	ok, err := d.gate.IsSatisfactory(ctx, answer)
	if err != nil {
		return "", err
	}
	if !ok {
		d.logger.Info(dispatcherModule, "Web-assisted answer judged unsatisfactory", map[string]interface{}{
			"query": req.original(),
		})
		return d.deferQuery(ctx, req)
	}

	record := fmt.Sprintf("Question: %s\nAnswer: %s", req.original(), answer)
	if err := d.store.Insert(ctx, []string{record}, constant.NamespaceWebQueries); err != nil {
		return "", serviceFailure("store web query", err)
	}
	return answer, nil
}

func (d *Dispatcher) respondFromDocument(
	ctx context.Context,
	req Request,
	summary *cycleSummary,
	frame func(query, summary, history string) string,
) (string, error) {
	docSummary, err := summary.get(ctx)
	if err != nil {
		return "", err
	}

	answer, err := d.llmProvider.Generate(ctx, frame(req.Query, docSummary, req.History))
	if err != nil {
		return "", serviceFailure("document answer", err)
	}
	return answer, nil
}

// deferQuery queues the original query for curation and returns the placeholder.
func (d *Dispatcher) deferQuery(ctx context.Context, req Request) (string, error) {
	if err := d.store.Insert(ctx, []string{req.original()}, constant.NamespaceNewQueries); err != nil {
		return "", serviceFailure("store deferred query", err)
	}
	d.logger.Info(dispatcherModule, "Query deferred for curation", map[string]interface{}{
		"query": req.original(),
	})
	return constant.PlaceholderAnswer, nil
}
