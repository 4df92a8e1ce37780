package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"wordcards/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db *sql.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB) *WordRepo {
	return &WordRepo{db: db}
}

// ListWords returns all words of the user with their correct answer counters
func (r *WordRepo) ListWords(ctx context.Context, telegramID int64) ([]domain.WordRecord, error) {
	query, args, err := psql.Select("w.target_word", "w.translate_word", "uw.correct_answers").
		From("words w").
		Join("user_words uw ON w.word_id = uw.word_id").
		Join("users u ON uw.user_id = u.user_id").
		Where(sq.Eq{"u.telegram_id": telegramID}).
		OrderBy("w.target_word").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list words query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	var words []domain.WordRecord
	for rows.Next() {
		var w domain.WordRecord
		if err := rows.Scan(&w.Target, &w.Translation, &w.CorrectAnswers); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}
	return words, nil
}

// AddWord links a word to the user.
// An existing global word with the same target is reused and keeps its translation.
func (r *WordRepo) AddWord(ctx context.Context, telegramID int64, target, translation string) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		// User may add a word before ever starting a quiz
		registerQuery, registerArgs, err := psql.Insert("users").
			Columns("telegram_id").
			Values(telegramID).
			Suffix("ON CONFLICT (telegram_id) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("build register user query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, registerQuery, registerArgs...); err != nil {
			return fmt.Errorf("register user: %w", err)
		}

		wordQuery, wordArgs, err := psql.Insert("words").
			Columns("target_word", "translate_word").
			Values(target, translation).
			Suffix("ON CONFLICT (target_word) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert word query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, wordQuery, wordArgs...); err != nil {
			return fmt.Errorf("insert word: %w", err)
		}

		linkQuery, linkArgs, err := psql.Insert("user_words").
			Columns("user_id", "word_id", "correct_answers").
			Values(
				sq.Expr("(?)", userIDByTelegram(telegramID)),
				sq.Expr("(?)", wordIDByTarget(target)),
				0,
			).
			Suffix("ON CONFLICT (user_id, word_id) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("build link word query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, linkQuery, linkArgs...); err != nil {
			return fmt.Errorf("link word: %w", err)
		}
		return nil
	})
}

// RemoveWord unlinks a word from the user; the global word stays
func (r *WordRepo) RemoveWord(ctx context.Context, telegramID int64, target string) error {
	query, args, err := psql.Delete("user_words").
		Where(sq.Expr("user_id = (?)", userIDByTelegram(telegramID))).
		Where(sq.Expr("word_id = (?)", wordIDByTarget(target))).
		ToSql()
	if err != nil {
		return fmt.Errorf("build remove word query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove word: %w", err)
	}
	return nil
}

// IncrementCorrect increments the correct answer counter of the user's word
func (r *WordRepo) IncrementCorrect(ctx context.Context, telegramID int64, target string) error {
	query, args, err := psql.Update("user_words").
		Set("correct_answers", sq.Expr("correct_answers + 1")).
		Where(sq.Expr("user_id = (?)", userIDByTelegram(telegramID))).
		Where(sq.Expr("word_id = (?)", wordIDByTarget(target))).
		ToSql()
	if err != nil {
		return fmt.Errorf("build increment correct query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("increment correct: %w", err)
	}
	return nil
}

// ProgressCounts returns the number of user's words and the sum of correct answers
func (r *WordRepo) ProgressCounts(ctx context.Context, telegramID int64) (domain.Progress, error) {
	query, args, err := psql.Select("COUNT(*)", "COALESCE(SUM(correct_answers), 0)").
		From("user_words").
		Where(sq.Expr("user_id = (?)", userIDByTelegram(telegramID))).
		ToSql()
	if err != nil {
		return domain.Progress{}, fmt.Errorf("build progress query: %w", err)
	}

	var p domain.Progress
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.WordCount, &p.TotalCorrect); err != nil {
		return domain.Progress{}, fmt.Errorf("progress counts: %w", err)
	}
	return p, nil
}

func (r *WordRepo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
