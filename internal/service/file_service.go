package service

import (
	"context"
	"encoding/json"
	"time"

	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/pkg/serverutils"
	"faq-chatbot-be/internal/repository/specification"
	"faq-chatbot-be/internal/repository/unitofwork"
	"faq-chatbot-be/pkg/document"
	"faq-chatbot-be/pkg/embedding"

	"github.com/google/uuid"
)

const fileModule = "FILE"

const defaultSearchLimit = 5

type IFileService interface {
	Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadFileRequest) (*dto.UploadFileResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.FileSummaryResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowFileResponse, error)
	Search(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.SearchFileRequest) ([]*dto.SearchFileResult, error)
}

type fileService struct {
	uowFactory        unitofwork.RepositoryFactory
	publisherService  IPublisherService
	embeddingProvider embedding.EmbeddingProvider
	searchThreshold   float64
	logger            logger.ILogger
}

func NewFileService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	embeddingProvider embedding.EmbeddingProvider,
	searchThreshold float64,
	log logger.ILogger,
) IFileService {
	return &fileService{
		uowFactory:        uowFactory,
		publisherService:  publisherService,
		embeddingProvider: embeddingProvider,
		searchThreshold:   searchThreshold,
		logger:            log,
	}
}

func (s *fileService) Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadFileRequest) (*dto.UploadFileResponse, error) {
	text, err := document.Extract(req.FileName, req.Content)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	file := &entity.File{
		Id:        id,
		UserId:    userId,
		FileName:  req.FileName,
		Content:   text,
		IndexId:   id.String(),
		Status:    entity.FileStatusPending,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FileRepository().Create(ctx, file); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(dto.PublishEmbedFileMessage{FileId: file.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Error(fileModule, "Failed to enqueue embed job", map[string]interface{}{
			"file_id": file.Id.String(),
			"error":   err.Error(),
		})
		if markErr := uow.FileRepository().UpdateStatus(ctx, file.Id, entity.FileStatusFailed, 0); markErr != nil {
			s.logger.Error(fileModule, "Failed to mark file failed", map[string]interface{}{
				"file_id": file.Id.String(),
				"error":   markErr.Error(),
			})
		}
		return nil, err
	}

	s.logger.Info(fileModule, "File uploaded", map[string]interface{}{
		"file_id":   file.Id.String(),
		"user_id":   userId.String(),
		"file_name": file.FileName,
		"length":    len(text),
	})

	return &dto.UploadFileResponse{
		Id:       file.Id,
		FileName: file.FileName,
		Status:   string(file.Status),
	}, nil
}

func (s *fileService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.FileSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	files, err := uow.FileRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.FileSummaryResponse, 0, len(files))
	for _, f := range files {
		res = append(res, &dto.FileSummaryResponse{
			Id:         f.Id,
			FileName:   f.FileName,
			Status:     string(f.Status),
			ChunkCount: f.ChunkCount,
			CreatedAt:  f.CreatedAt,
			UpdatedAt:  f.UpdatedAt,
		})
	}
	return res, nil
}

func (s *fileService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowFileResponse, error) {
	file, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	return &dto.ShowFileResponse{
		Id:          file.Id,
		FileName:    file.FileName,
		FileContent: file.Content,
		Status:      string(file.Status),
		CreatedAt:   file.CreatedAt,
	}, nil
}

func (s *fileService) Search(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.SearchFileRequest) ([]*dto.SearchFileResult, error) {
	file, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	res, err := s.embeddingProvider.Generate(ctx, req.Query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.KnowledgeChunkRepository().SearchSimilarWithScore(ctx, res.Embedding.Values, file.IndexId, limit, s.searchThreshold)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.SearchFileResult, 0, len(scored))
	for _, sc := range scored {
		results = append(results, &dto.SearchFileResult{
			Content:    sc.Chunk.Content,
			ChunkIndex: sc.Chunk.ChunkIndex,
			Similarity: sc.Similarity,
		})
	}
	return results, nil
}

func (s *fileService) findOwned(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*entity.File, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	file, err := uow.FileRepository().FindOne(ctx,
		specification.ByID{ID: id},
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
