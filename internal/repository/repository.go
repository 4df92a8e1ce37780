package repository

import (
	"context"

	"wordcards/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	RegisterUser(ctx context.Context, telegramID int64) error
}

// WordRepository defines word data operations.
// All calls are keyed by the Telegram user ID.
type WordRepository interface {
	ListWords(ctx context.Context, telegramID int64) ([]domain.WordRecord, error)
	AddWord(ctx context.Context, telegramID int64, target, translation string) error
	RemoveWord(ctx context.Context, telegramID int64, target string) error
	IncrementCorrect(ctx context.Context, telegramID int64, target string) error
	ProgressCounts(ctx context.Context, telegramID int64) (domain.Progress, error)
}
