package testutil

import (
	"context"

	"wordcards/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, telegramID int64) error {
	args := m.Called(ctx, telegramID)
	return args.Error(0)
}

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) ListWords(ctx context.Context, telegramID int64) ([]domain.WordRecord, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordRecord), args.Error(1)
}

func (m *MockWordRepository) AddWord(ctx context.Context, telegramID int64, target, translation string) error {
	args := m.Called(ctx, telegramID, target, translation)
	return args.Error(0)
}

func (m *MockWordRepository) RemoveWord(ctx context.Context, telegramID int64, target string) error {
	args := m.Called(ctx, telegramID, target)
	return args.Error(0)
}

func (m *MockWordRepository) IncrementCorrect(ctx context.Context, telegramID int64, target string) error {
	args := m.Called(ctx, telegramID, target)
	return args.Error(0)
}

func (m *MockWordRepository) ProgressCounts(ctx context.Context, telegramID int64) (domain.Progress, error) {
	args := m.Called(ctx, telegramID)
	return args.Get(0).(domain.Progress), args.Error(1)
}
