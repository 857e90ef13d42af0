package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByFileID struct {
	FileID uuid.UUID
}

func (s ByFileID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("file_id = ?", s.FileID)
}
