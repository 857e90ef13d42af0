package contract

import (
	"context"

	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/repository/specification"
)

// ScoredKnowledgeChunk wraps KnowledgeChunk with its similarity score
type ScoredKnowledgeChunk struct {
	Chunk      *entity.KnowledgeChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type KnowledgeChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error)
	// SearchSimilarWithScore returns chunks of one namespace ranked by cosine similarity, filtered by threshold
	SearchSimilarWithScore(ctx context.Context, embedding []float32, namespace string, limit int, threshold float64) ([]*ScoredKnowledgeChunk, error)
}
