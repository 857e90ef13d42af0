package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage rows are append-only; there is no update or soft delete.
type ChatMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_messages_owner"`
	FileId    uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_messages_owner"`
	Role      string    `gorm:"type:varchar(20);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
