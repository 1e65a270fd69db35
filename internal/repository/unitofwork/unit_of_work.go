package unitofwork

import (
	"context"

	"sermon-advisor-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to a single gorm session. Begin
// switches the session to an explicit transaction; reads that need no
// transactional guarantee can skip Begin entirely.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TeachingRepository() contract.TeachingRepository
	TeachingEmbeddingRepository() contract.TeachingEmbeddingRepository
}

// RepositoryFactory hands out a fresh UnitOfWork per request, bound to the
// caller's context.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
