package rag

import (
	"context"
	"errors"
	"testing"

	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineGreetingWithEmptyHistory(t *testing.T) {
	model := newScriptedLLM(map[string]string{
		markNormalize: "Hello",
		markClassify:  "greeting",
	})
	store := &recordingStore{}
	search := &fakeSearch{}
	engine := NewEngine(model, search, store, logger.NewNopLogger())

	res, err := engine.Handle(context.Background(), Query{
		Raw:             "Hello",
		DocumentContext: testDocument,
	})
	require.NoError(t, err)
	assert.Equal(t, LabelGreeting, res.Label)
	assert.Equal(t, constant.GenericGreeting, res.Answer)
	assert.Equal(t, 0, model.count(markSummary))
	assert.Empty(t, store.inserts)
	assert.Empty(t, search.queries)
}

func TestEngineRefundPolicyWithWebSearch(t *testing.T) {
	const answer = "You can request a refund within 30 days of purchase."
	model := newScriptedLLM(map[string]string{
		markNormalize:  "What is the refund policy?",
		markClassify:   "needs_web_search",
		markSummary:    "Acme Store FAQ covering shipping and returns.",
		markWebRewrite: "Acme Store refund policy",
		markCombined:   answer,
		markQuality:    "satisfactory",
	})
	store := &recordingStore{}
	search := &fakeSearch{answer: "Acme offers refunds within 30 days."}
	engine := NewEngine(model, search, store, logger.NewNopLogger())

	res, err := engine.Handle(context.Background(), Query{
		Raw:             "What is the refund policy?",
		DocumentContext: testDocument,
	})
	require.NoError(t, err)
	assert.Equal(t, LabelNeedsWebSearch, res.Label)
	assert.Equal(t, answer, res.Answer)
	require.Len(t, store.inserts, 1)
	assert.Equal(t, constant.NamespaceWebQueries, store.inserts[0].namespace)
	assert.Equal(t, []string{"Question: What is the refund policy?\nAnswer: " + answer}, store.inserts[0].texts)
}

func TestEngineClassifiesTheRewrittenQuery(t *testing.T) {
	model := newScriptedLLM(map[string]string{
		markNormalize: "Rewritten: \"What is your return window?\"",
		markClassify:  "direct_answer",
		markSummary:   "Returns within 30 days.",
		markDirect:    "30 days.",
	})
	engine := NewEngine(model, &fakeSearch{}, &recordingStore{}, logger.NewNopLogger())

	res, err := engine.Handle(context.Background(), Query{Raw: "return window?", DocumentContext: testDocument})
	require.NoError(t, err)
	assert.Equal(t, "What is your return window?", res.RewrittenQuery)
	assert.Contains(t, model.last(markClassify).prompt, "Question: What is your return window?")
	assert.Contains(t, model.last(markDirect).prompt, "Question: What is your return window?")
}

func TestEnginePropagatesServiceFailure(t *testing.T) {
	tests := []struct {
		name   string
		failAt string
	}{
		{name: "normalizer", failAt: markNormalize},
		{name: "classifier", failAt: markClassify},
		{name: "dispatcher", failAt: markDirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := newScriptedLLM(map[string]string{
				markNormalize: "q",
				markClassify:  "direct_answer",
				markSummary:   "s",
				markDirect:    "a",
			})
			model.errs[tt.failAt] = errors.New("connection refused")
			store := &recordingStore{}
			engine := NewEngine(model, &fakeSearch{}, store, logger.NewNopLogger())

			res, err := engine.Handle(context.Background(), Query{Raw: "q", DocumentContext: testDocument})
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrServiceFailure)
			assert.Empty(t, store.inserts)
		})
	}
}
