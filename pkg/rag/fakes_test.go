package rag

import (
	"context"
	"errors"
	"strings"
	"sync"

	"faq-chatbot-be/pkg/llm"
)

// Markers identify which prompt the fake model is answering.
const (
	markQuality    = "Judge whether an assistant's answer"
	markNormalize  = "Rewrite the user's latest message"
	markClassify   = "You label a user's question"
	markRelated    = "Answer YES or NO only."
	markGreeting   = "You are a friendly FAQ assistant"
	markWebRewrite = "Reply with the search query only."
	markSummary    = "Summarize the following document."
	markCombined   = "using all the information above"
	markFollowUp   = "following up on the conversation"
	markDirect     = "directly from the reference material"
)

var routeOrder = []string{
	markQuality, markNormalize, markClassify, markRelated, markGreeting,
	markWebRewrite, markSummary, markCombined, markFollowUp, markDirect,
}

type llmCall struct {
	marker  string
	prompt  string
	options *llm.Options
}

// scriptedLLM answers each prompt kind with a canned reply or error.
type scriptedLLM struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
	calls   []llmCall
}

func newScriptedLLM(replies map[string]string) *scriptedLLM {
	return &scriptedLLM{replies: replies, errs: map[string]error{}}
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	marker := ""
	for _, m := range routeOrder {
		if strings.Contains(prompt, m) {
			marker = m
			break
		}
	}
	s.calls = append(s.calls, llmCall{marker: marker, prompt: prompt, options: llm.Apply(llm.Options{}, opts...)})

	if err, ok := s.errs[marker]; ok {
		return "", err
	}
	if reply, ok := s.replies[marker]; ok {
		return reply, nil
	}
	return "", errors.New("unscripted prompt")
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.Generate(ctx, history[len(history)-1].Content, opts...)
}

func (s *scriptedLLM) count(marker string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c.marker == marker {
			n++
		}
	}
	return n
}

func (s *scriptedLLM) last(marker string) *llmCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.calls) - 1; i >= 0; i-- {
		if s.calls[i].marker == marker {
			return &s.calls[i]
		}
	}
	return nil
}

type insert struct {
	texts     []string
	namespace string
}

type recordingStore struct {
	mu      sync.Mutex
	inserts []insert
	err     error
}

func (r *recordingStore) Insert(ctx context.Context, texts []string, namespace string) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserts = append(r.inserts, insert{texts: append([]string(nil), texts...), namespace: namespace})
	return nil
}

func (r *recordingStore) RetrieveAllText(ctx context.Context, indexID string) (string, error) {
	return "", nil
}

type fakeSearch struct {
	answer  string
	err     error
	queries []string
}

func (f *fakeSearch) SearchAnswer(ctx context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	return f.answer, f.err
}
