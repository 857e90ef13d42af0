package mapper

import (
	"time"

	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/model"
)

type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) ToEntity(f *model.File) *entity.File {
	if f == nil {
		return nil
	}

	var updatedAt *time.Time
	if !f.UpdatedAt.IsZero() {
		t := f.UpdatedAt
		updatedAt = &t
	}

	return &entity.File{
		Id:         f.Id,
		UserId:     f.UserId,
		FileName:   f.FileName,
		Content:    f.Content,
		IndexId:    f.IndexId,
		Status:     entity.FileStatus(f.Status),
		ChunkCount: f.ChunkCount,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *FileMapper) ToModel(f *entity.File) *model.File {
	if f == nil {
		return nil
	}

	var updatedAt time.Time
	if f.UpdatedAt != nil {
		updatedAt = *f.UpdatedAt
	}

	return &model.File{
		Id:         f.Id,
		UserId:     f.UserId,
		FileName:   f.FileName,
		Content:    f.Content,
		IndexId:    f.IndexId,
		Status:     string(f.Status),
		ChunkCount: f.ChunkCount,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *FileMapper) ToEntities(files []*model.File) []*entity.File {
	entities := make([]*entity.File, len(files))
	for i, f := range files {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
