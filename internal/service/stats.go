package service

import (
	"context"

	"wordcards/internal/domain"
	"wordcards/internal/repository"

	"go.uber.org/zap"
)

// StatsService handles learning progress
type StatsService struct {
	wordRepo repository.WordRepository
	logger   *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(wordRepo repository.WordRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		wordRepo: wordRepo,
		logger:   logger,
	}
}

// Progress returns how many words the user studies and the sum of correct answers
func (s *StatsService) Progress(ctx context.Context, userID int64) (domain.Progress, error) {
	progress, err := s.wordRepo.ProgressCounts(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load progress", zap.Int64("user_id", userID), zap.Error(err))
		return domain.Progress{}, storeError(err)
	}

	s.logger.Debug("Progress loaded",
		zap.Int64("user_id", userID),
		zap.Int("word_count", progress.WordCount),
		zap.Int("total_correct", progress.TotalCorrect),
	)
	return progress, nil
}
