package entity

import (
	"time"

	"github.com/google/uuid"
)

type FileStatus string

const (
	FileStatusPending FileStatus = "pending"
	FileStatusIndexed FileStatus = "indexed"
	FileStatusFailed  FileStatus = "failed"
)

// File is an uploaded document. IndexId names the knowledge store namespace
// holding its fragments.
type File struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	FileName   string
	Content    string
	IndexId    string
	Status     FileStatus
	ChunkCount int
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
