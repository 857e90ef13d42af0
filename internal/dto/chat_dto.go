package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatQueryRequest struct {
	FileId  uuid.UUID `json:"file_id" form:"file_id" validate:"required"`
	Query   string    `json:"query" form:"query" validate:"required,max=4000"`
	History string    `json:"history" form:"history"`
}

type ChatQueryResponse struct {
	Response string `json:"response"`
	Label    string `json:"label"`
}

type ChatHistoryItem struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
