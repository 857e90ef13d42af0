package contract

import (
	"context"

	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FileRepository interface {
	Create(ctx context.Context, file *entity.File) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.FileStatus, chunkCount int) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.File, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.File, error)
}
