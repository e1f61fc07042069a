package unitofwork

import (
	"context"

	"ai-vocabcoach-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	WordRepository() contract.WordRepository
	PracticeSessionRepository() contract.PracticeSessionRepository
	SessionWordRepository() contract.SessionWordRepository
	AttemptRepository() contract.AttemptRepository
	MemoryRepository() contract.MemoryRepository
}
