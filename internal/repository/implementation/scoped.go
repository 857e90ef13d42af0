package implementation

import (
	"context"

	"faq-chatbot-be/internal/repository/specification"

	"gorm.io/gorm"
)

// scoped binds ctx and applies specs in order.
func scoped(ctx context.Context, db *gorm.DB, specs []specification.Specification) *gorm.DB {
	query := db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	return query
}
