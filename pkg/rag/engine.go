package rag

import (
	"context"

	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/pkg/knowledge"
	"faq-chatbot-be/pkg/llm"
	"faq-chatbot-be/pkg/websearch"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const engineModule = "rag.engine"

// Query is one user turn with its conversation and document context.
type Query struct {
	Raw             string
	History         string
	DocumentContext string
}

type Result struct {
	Label          Label
	Answer         string
	RewrittenQuery string
}

// Engine runs normalize, classify and dispatch in sequence for one query.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	normalizer *Normalizer
	classifier *Classifier
	dispatcher *Dispatcher
	logger     logger.ILogger
	tracer     trace.Tracer
}

func NewEngine(
	llmProvider llm.LLMProvider,
	search websearch.Provider,
	store knowledge.Store,
	log logger.ILogger,
) *Engine {
	return &Engine{
		normalizer: NewNormalizer(llmProvider, constant.Abbreviations),
		classifier: NewClassifier(llmProvider),
		dispatcher: NewDispatcher(
			llmProvider,
			search,
			store,
			NewQualityGate(llmProvider),
			NewSummarizer(llmProvider),
			log,
		),
		logger: log,
		tracer: otel.Tracer("faq-chatbot-be/pkg/rag"),
	}
}

func (e *Engine) Handle(ctx context.Context, q Query) (*Result, error) {
	ctx, span := e.tracer.Start(ctx, "rag.Handle")
	defer span.End()

	rewritten, err := e.normalize(ctx, q)
	if err != nil {
		return nil, e.fail(span, "normalize", q, err)
	}

	label, err := e.classify(ctx, rewritten, q)
	if err != nil {
		return nil, e.fail(span, "classify", q, err)
	}
	span.SetAttributes(attribute.String("rag.label", label.String()))

	answer, err := e.respond(ctx, label, rewritten, q)
	if err != nil {
		return nil, e.fail(span, "respond", q, err)
	}

	e.logger.Info(engineModule, "Query handled", map[string]interface{}{
		"query":           q.Raw,
		"rewritten_query": rewritten,
		"label":           label.String(),
		"answer_length":   len(answer),
	})

	return &Result{
		Label:          label,
		Answer:         answer,
		RewrittenQuery: rewritten,
	}, nil
}

func (e *Engine) normalize(ctx context.Context, q Query) (string, error) {
	ctx, span := e.tracer.Start(ctx, "rag.Normalize")
	defer span.End()
	return e.normalizer.Normalize(ctx, q.Raw, q.History)
}

func (e *Engine) classify(ctx context.Context, rewritten string, q Query) (Label, error) {
	ctx, span := e.tracer.Start(ctx, "rag.Classify")
	defer span.End()
	return e.classifier.Classify(ctx, rewritten, q.History, q.DocumentContext)
}

func (e *Engine) respond(ctx context.Context, label Label, rewritten string, q Query) (string, error) {
	ctx, span := e.tracer.Start(ctx, "rag.Respond", trace.WithAttributes(attribute.String("rag.label", label.String())))
	defer span.End()
	return e.dispatcher.Respond(ctx, label, Request{
		RawQuery:        q.Raw,
		Query:           rewritten,
		History:         q.History,
		DocumentContext: q.DocumentContext,
	})
}

func (e *Engine) fail(span trace.Span, step string, q Query, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, step)
	e.logger.Error(engineModule, "Query handling failed", map[string]interface{}{
		"step":  step,
		"query": q.Raw,
		"error": err.Error(),
	})
	return err
}
