package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one logged conversation turn, owned by a (user, file) pair.
type ChatMessage struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	FileId    uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}
