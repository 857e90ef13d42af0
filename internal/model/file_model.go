package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type File struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	FileName   string         `gorm:"type:varchar(255);not null"`
	Content    string         `gorm:"type:text;not null"`
	IndexId    string         `gorm:"type:varchar(255);not null;index"`
	Status     string         `gorm:"type:varchar(50);not null;default:'pending'"`
	ChunkCount int            `gorm:"default:0"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (File) TableName() string {
	return "files"
}
