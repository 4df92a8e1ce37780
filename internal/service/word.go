package service

import (
	"context"
	"fmt"
	"strings"

	"wordcards/internal/domain"
	"wordcards/internal/repository"
)

// WordService handles word-related business logic
type WordService struct {
	wordRepo repository.WordRepository
}

// NewWordService creates a new word service
func NewWordService(wordRepo repository.WordRepository) *WordService {
	return &WordService{wordRepo: wordRepo}
}

// ListWords returns the user's vocabulary
func (s *WordService) ListWords(ctx context.Context, userID int64) ([]domain.WordRecord, error) {
	words, err := s.wordRepo.ListWords(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return words, nil
}

// AddWord saves a word-translation pair for the user
func (s *WordService) AddWord(ctx context.Context, userID int64, word, translation string) error {
	word, translation = strings.TrimSpace(word), strings.TrimSpace(translation)
	if word == "" || translation == "" {
		return domain.ErrEmptyWord
	}
	if err := s.wordRepo.AddWord(ctx, userID, word, translation); err != nil {
		return storeError(err)
	}
	return nil
}

// RemoveWord removes a word from the user's vocabulary
func (s *WordService) RemoveWord(ctx context.Context, userID int64, word string) error {
	if err := s.wordRepo.RemoveWord(ctx, userID, word); err != nil {
		return storeError(err)
	}
	return nil
}

// RecordCorrectAnswer increments the correct answer counter of the word
func (s *WordService) RecordCorrectAnswer(ctx context.Context, userID int64, word string) error {
	if err := s.wordRepo.IncrementCorrect(ctx, userID, word); err != nil {
		return storeError(err)
	}
	return nil
}

func storeError(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}
