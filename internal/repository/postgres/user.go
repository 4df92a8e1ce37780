package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// RegisterUser creates user if not exists
func (r *UserRepo) RegisterUser(ctx context.Context, telegramID int64) error {
	query, args, err := psql.Insert("users").
		Columns("telegram_id").
		Values(telegramID).
		Suffix("ON CONFLICT (telegram_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build register user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	return nil
}
