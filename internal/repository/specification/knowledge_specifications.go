package specification

import "gorm.io/gorm"

type ByNamespace struct {
	Namespace string
}

func (s ByNamespace) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("namespace = ?", s.Namespace)
}

// InFragmentOrder orders chunks the way they were split from their source.
type InFragmentOrder struct{}

func (s InFragmentOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("chunk_index ASC")
}
