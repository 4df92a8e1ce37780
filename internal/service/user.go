package service

import (
	"context"

	"wordcards/internal/repository"
)

// UserService handles user registration
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates user record if doesn't exist
func (s *UserService) Register(ctx context.Context, userID int64) error {
	if err := s.userRepo.RegisterUser(ctx, userID); err != nil {
		return storeError(err)
	}
	return nil
}
