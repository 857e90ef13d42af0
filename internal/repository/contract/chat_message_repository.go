package contract

import (
	"context"

	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/repository/specification"
)

// ChatMessageRepository is append-only.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
}
