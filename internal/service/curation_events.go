package service

import (
	"context"

	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/pkg/events"
	"faq-chatbot-be/pkg/knowledge"
)

// eventingStore announces curation writes on the event bus after they land.
// Publishing is best effort and never changes the outcome of Insert.
type eventingStore struct {
	knowledge.Store
	publisher events.Publisher
	logger    logger.ILogger
}

func NewEventingStore(inner knowledge.Store, publisher events.Publisher, log logger.ILogger) knowledge.Store {
	if publisher == nil {
		return inner
	}
	return &eventingStore{Store: inner, publisher: publisher, logger: log}
}

func (s *eventingStore) Insert(ctx context.Context, texts []string, namespace string) error {
	if err := s.Store.Insert(ctx, texts, namespace); err != nil {
		return err
	}

	for _, text := range texts {
		var event events.Event
		switch namespace {
		case constant.NamespaceNewQueries:
			event = events.NewQueryDeferred(namespace, text)
		case constant.NamespaceWebQueries:
			event = events.NewWebQueryAnswered(namespace, text)
		default:
			return nil
		}

		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn(storeModule, "Failed to publish curation event", map[string]interface{}{
				"event": event.EventType(),
				"error": err.Error(),
			})
		}
	}
	return nil
}
