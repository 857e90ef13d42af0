package unitofwork

import (
	"context"

	"faq-chatbot-be/internal/repository/contract"
)

// UnitOfWork scopes repositories to one optional transaction.
// Repositories fetched between Begin and Commit/Rollback share it.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	FileRepository() contract.FileRepository
	ChatMessageRepository() contract.ChatMessageRepository
	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
}

// InTransaction runs fn inside a transaction on uow, committing when fn
// returns nil and rolling back otherwise.
func InTransaction(ctx context.Context, uow UnitOfWork, fn func(tx UnitOfWork) error) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := fn(uow); err != nil {
		_ = uow.Rollback()
		return err
	}
	return uow.Commit()
}
