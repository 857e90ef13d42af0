// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/repository/specification"
	"faq-chatbot-be/internal/repository/unitofwork"
	"faq-chatbot-be/pkg/events"
	"faq-chatbot-be/pkg/knowledge"
	"faq-chatbot-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
)

const ingestModule = "INGEST"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService indexes uploaded files: it splits their text and inserts
// the fragments under the file's index id.
type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	store          knowledge.Store
	splitter       utils.TextSplitter
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	store knowledge.Store,
	splitter utils.TextSplitter,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		uowFactory:     uowFactory,
		store:          store,
		splitter:       splitter,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedFileMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(ingestModule, "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads are never retried
		return
	}

	fileID := payload.FileId.String()
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	file, err := uow.FileRepository().FindOne(ctx, specification.ByID{ID: payload.FileId})
	if err != nil {
		cs.logger.Error(ingestModule, "Failed to load file", map[string]interface{}{"file_id": fileID, "error": err.Error()})
		msg.Nack()
		return
	}
	if file == nil {
		cs.logger.Warn(ingestModule, "File not found, dropping job", map[string]interface{}{"file_id": fileID})
		msg.Ack()
		return
	}
	if file.Status == entity.FileStatusIndexed {
		// knowledge store is append-only; indexing twice would duplicate fragments
		msg.Ack()
		return
	}

	chunks := cs.splitter.Split(file.Content)
	cs.logger.Info(ingestModule, "Content split", map[string]interface{}{
		"file_id": fileID,
		"chunks":  len(chunks),
		"length":  len(file.Content),
	})

	if len(chunks) == 0 {
		cs.markFailed(ctx, uow, file, "document has no text")
		msg.Ack()
		return
	}

	if err := cs.store.Insert(ctx, chunks, file.IndexId); err != nil {
		cs.markFailed(ctx, uow, file, err.Error())
		msg.Ack()
		return
	}

	if err := uow.FileRepository().UpdateStatus(ctx, file.Id, entity.FileStatusIndexed, len(chunks)); err != nil {
		cs.logger.Error(ingestModule, "Failed to mark file indexed", map[string]interface{}{"file_id": fileID, "error": err.Error()})
	}

	cs.publish(ctx, events.NewFileIndexed(fileID, file.IndexId, len(chunks)))
	cs.logger.Info(ingestModule, "File indexed", map[string]interface{}{"file_id": fileID, "chunks": len(chunks)})
	msg.Ack()
}

func (cs *consumerService) markFailed(ctx context.Context, uow unitofwork.UnitOfWork, file *entity.File, reason string) {
	cs.logger.Error(ingestModule, "Indexing failed", map[string]interface{}{
		"file_id": file.Id.String(),
		"reason":  reason,
	})
	if err := uow.FileRepository().UpdateStatus(ctx, file.Id, entity.FileStatusFailed, 0); err != nil {
		cs.logger.Error(ingestModule, "Failed to mark file failed", map[string]interface{}{"file_id": file.Id.String(), "error": err.Error()})
	}
	cs.publish(ctx, events.NewFileFailed(file.Id.String(), reason))
}

func (cs *consumerService) publish(ctx context.Context, event events.Event) {
	if cs.eventPublisher == nil {
		return
	}
	if err := cs.eventPublisher.Publish(ctx, event); err != nil {
		cs.logger.Warn(ingestModule, "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}
