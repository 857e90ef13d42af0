package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/repository/specification"
	"faq-chatbot-be/internal/repository/unitofwork"
	"faq-chatbot-be/pkg/embedding"
	"faq-chatbot-be/pkg/knowledge"

	"github.com/google/uuid"
)

const storeModule = "KNOWLEDGE"

// fragmentSeparator joins fragments in RetrieveAllText.
const fragmentSeparator = "\n\n"

// pgKnowledgeStore keeps fragments in knowledge_chunks with their embeddings.
type pgKnowledgeStore struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	maxFragments      int
	logger            logger.ILogger
}

func NewKnowledgeStore(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	maxFragments int,
	log logger.ILogger,
) knowledge.Store {
	if maxFragments <= 0 {
		maxFragments = knowledge.DefaultMaxFragments
	}
	return &pgKnowledgeStore{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		maxFragments:      maxFragments,
		logger:            log,
	}
}

func (s *pgKnowledgeStore) Insert(ctx context.Context, texts []string, namespace string) error {
	if len(texts) == 0 {
		return nil
	}

	now := time.Now()
	chunks := make([]*entity.KnowledgeChunk, 0, len(texts))
	for i, text := range texts {
		res, err := s.embeddingProvider.Generate(ctx, text, embedding.TaskRetrievalDocument)
		if err != nil {
			return fmt.Errorf("embed fragment %d of %q: %w", i, namespace, err)
		}
		chunks = append(chunks, &entity.KnowledgeChunk{
			Id:             uuid.New(),
			Namespace:      namespace,
			Content:        text,
			EmbeddingValue: res.Embedding.Values,
			ChunkIndex:     i,
			Metadata:       map[string]interface{}{"kind": namespaceKind(namespace)},
			CreatedAt:      now,
		})
	}

	err := unitofwork.InTransaction(ctx, s.uowFactory.NewUnitOfWork(ctx), func(tx unitofwork.UnitOfWork) error {
		return tx.KnowledgeChunkRepository().CreateBulk(ctx, chunks)
	})
	if err != nil {
		return err
	}

	s.logger.Debug(storeModule, "Fragments inserted", map[string]interface{}{
		"namespace": namespace,
		"count":     len(chunks),
	})
	return nil
}

func (s *pgKnowledgeStore) RetrieveAllText(ctx context.Context, indexID string) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.KnowledgeChunkRepository().FindAll(ctx,
		specification.ByNamespace{Namespace: indexID},
		specification.InFragmentOrder{},
		specification.Pagination{Limit: s.maxFragments},
	)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Content)
	}
	return strings.Join(parts, fragmentSeparator), nil
}

func namespaceKind(namespace string) string {
	switch namespace {
	case constant.NamespaceNewQueries:
		return "deferred_query"
	case constant.NamespaceWebQueries:
		return "web_answer"
	default:
		return "document"
	}
}
