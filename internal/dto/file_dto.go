package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadFileRequest struct {
	FileName string `form:"file_name" validate:"required,max=255"`
	Content  []byte `validate:"required"`
}

type UploadFileResponse struct {
	Id       uuid.UUID `json:"id"`
	FileName string    `json:"file_name"`
	Status   string    `json:"status"`
}

type FileSummaryResponse struct {
	Id         uuid.UUID  `json:"id"`
	FileName   string     `json:"file_name"`
	Status     string     `json:"status"`
	ChunkCount int        `json:"chunk_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type ShowFileResponse struct {
	Id          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	FileContent string    `json:"file_content"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type SearchFileRequest struct {
	Query string `query:"q" validate:"required"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

type SearchFileResult struct {
	Content    string  `json:"content"`
	ChunkIndex int     `json:"chunk_index"`
	Similarity float64 `json:"similarity"`
}

// PublishEmbedFileMessage is the payload of an embed job.
type PublishEmbedFileMessage struct {
	FileId uuid.UUID `json:"file_id"`
}
