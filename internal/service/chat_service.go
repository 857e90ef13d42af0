package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/pkg/serverutils"
	"faq-chatbot-be/internal/repository/specification"
	"faq-chatbot-be/internal/repository/unitofwork"
	"faq-chatbot-be/pkg/knowledge"
	"faq-chatbot-be/pkg/rag"

	"github.com/google/uuid"
)

const chatModule = "CHAT"

// QueryEngine answers one query; *rag.Engine implements it.
type QueryEngine interface {
	Handle(ctx context.Context, q rag.Query) (*rag.Result, error)
}

type IChatService interface {
	Query(ctx context.Context, userId uuid.UUID, req *dto.ChatQueryRequest) (*dto.ChatQueryResponse, error)
	History(ctx context.Context, userId uuid.UUID, fileId uuid.UUID) ([]*dto.ChatHistoryItem, error)
}

type chatService struct {
	uowFactory   unitofwork.RepositoryFactory
	engine       QueryEngine
	store        knowledge.Store
	historyCache IHistoryCache
	historyTurns int
	logger       logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	engine QueryEngine,
	store knowledge.Store,
	historyCache IHistoryCache,
	historyTurns int,
	log logger.ILogger,
) IChatService {
	if historyTurns <= 0 {
		historyTurns = 10
	}
	return &chatService{
		uowFactory:   uowFactory,
		engine:       engine,
		store:        store,
		historyCache: historyCache,
		historyTurns: historyTurns,
		logger:       log,
	}
}

func (s *chatService) Query(ctx context.Context, userId uuid.UUID, req *dto.ChatQueryRequest) (*dto.ChatQueryResponse, error) {
	file, err := s.findFile(ctx, userId, req.FileId)
	if err != nil {
		return nil, err
	}

	documentContext, err := s.store.RetrieveAllText(ctx, file.IndexId)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieve document: %w", rag.ErrServiceFailure, err)
	}

	history := strings.TrimSpace(req.History)
	if history == "" {
		history, err = s.recentHistory(ctx, userId, file.Id)
		if err != nil {
			return nil, err
		}
	}

	result, err := s.engine.Handle(ctx, rag.Query{
		Raw:             req.Query,
		History:         history,
		DocumentContext: documentContext,
	})
	if err != nil {
		return nil, err
	}

	if err := s.logTurns(ctx, userId, file.Id, req.Query, result.Answer); err != nil {
		return nil, fmt.Errorf("%w: conversation log: %w", rag.ErrServiceFailure, err)
	}
	s.historyCache.Invalidate(ctx, historyKey(userId, file.Id))

	return &dto.ChatQueryResponse{
		Response: result.Answer,
		Label:    result.Label.String(),
	}, nil
}

func (s *chatService) History(ctx context.Context, userId uuid.UUID, fileId uuid.UUID) ([]*dto.ChatHistoryItem, error) {
	if _, err := s.findFile(ctx, userId, fileId); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByFileID{FileID: fileId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ChatHistoryItem, 0, len(messages))
	for _, m := range messages {
		items = append(items, &dto.ChatHistoryItem{
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return items, nil
}

// logTurns writes the user turn then the assistant turn in one transaction.
func (s *chatService) logTurns(ctx context.Context, userId, fileId uuid.UUID, rawQuery, answer string) error {
	now := time.Now()
	turns := []*entity.ChatMessage{
		{
			Id:        uuid.New(),
			UserId:    userId,
			FileId:    fileId,
			Role:      constant.ChatMessageRoleUser,
			Content:   rawQuery,
			CreatedAt: now,
		},
		{
			Id:        uuid.New(),
			UserId:    userId,
			FileId:    fileId,
			Role:      constant.ChatMessageRoleAssistant,
			Content:   answer,
			CreatedAt: now.Add(time.Microsecond), // postgres timestamps keep microseconds
		},
	}
	return unitofwork.InTransaction(ctx, s.uowFactory.NewUnitOfWork(ctx), func(tx unitofwork.UnitOfWork) error {
		for _, turn := range turns {
			if err := tx.ChatMessageRepository().Create(ctx, turn); err != nil {
				return err
			}
		}
		return nil
	})
}

// recentHistory renders the last historyTurns exchanges (two rows each) as "role: content" lines.
func (s *chatService) recentHistory(ctx context.Context, userId, fileId uuid.UUID) (string, error) {
	key := historyKey(userId, fileId)
	if cached, ok := s.historyCache.Get(ctx, key); ok {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByFileID{FileID: fileId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 2 * s.historyTurns}, // user + assistant row per turn
	)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		lines = append(lines, fmt.Sprintf("%s: %s", messages[i].Role, messages[i].Content))
	}
	history := strings.Join(lines, "\n")

	s.historyCache.Set(ctx, key, history)
	s.logger.Debug(chatModule, "History rebuilt from log", map[string]interface{}{
		"file_id": fileId.String(),
		"turns":   len(messages),
	})
	return history, nil
}

func (s *chatService) findFile(ctx context.Context, userId, fileId uuid.UUID) (*entity.File, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	file, err := uow.FileRepository().FindOne(ctx,
		specification.ByID{ID: fileId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, serverutils.NewNotFoundError("file not found")
	}
	return file, nil
}
