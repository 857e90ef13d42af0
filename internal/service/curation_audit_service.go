package service

import (
	"context"

	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/pkg/events"
	pktNats "faq-chatbot-be/pkg/nats"
)

const auditModule = "CURATION_AUDIT"

// EventSubscriber is satisfied by *pktNats.Subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventPattern, durableName string, handler pktNats.EventHandler) error
}

type ICurationAuditService interface {
	Start(ctx context.Context) error
}

// curationAuditService keeps a durable trail of deferred and web-answered
// queries so curators can review them from the log.
type curationAuditService struct {
	subscriber EventSubscriber
	logger     logger.ILogger
}

func NewCurationAuditService(subscriber EventSubscriber, log logger.ILogger) ICurationAuditService {
	return &curationAuditService{subscriber: subscriber, logger: log}
}

func (s *curationAuditService) Start(ctx context.Context) error {
	for _, pattern := range []string{events.TypeQueryDeferred, events.TypeWebQueryAnswered, "file.*"} {
		durable := "curation-audit-" + durableSuffix(pattern)
		if err := s.subscriber.Subscribe(ctx, pattern, durable, s.handle); err != nil {
			return err
		}
	}
	return nil
}

func (s *curationAuditService) handle(ctx context.Context, event events.Event) error {
	details := map[string]interface{}{
		"event":       event.EventType(),
		"occurred_at": event.Timestamp(),
	}
	for k, v := range event.Payload() {
		details[k] = v
	}
	s.logger.Info(auditModule, "Curation event", details)
	return nil
}

func durableSuffix(pattern string) string {
	out := make([]rune, 0, len(pattern))
	for _, r := range pattern {
		switch r {
		case '.', '*', '>':
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
