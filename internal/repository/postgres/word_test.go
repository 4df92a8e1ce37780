package postgres

import (
	"context"
	"fmt"
	"testing"

	"wordcards/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

const listWordsQuery = "SELECT w.target_word, w.translate_word, uw.correct_answers FROM words w " +
	"JOIN user_words uw ON w.word_id = uw.word_id JOIN users u ON uw.user_id = u.user_id " +
	"WHERE u.telegram_id = \\$1 ORDER BY w.target_word"

func TestWordRepo_ListWords(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expected      []domain.WordRecord
		expectedError bool
	}{
		{
			name: "words found",
			mockRows: sqlmock.NewRows([]string{"target_word", "translate_word", "correct_answers"}).
				AddRow("cat", "кот", 2).
				AddRow("dog", "собака", 0),
			expected: []domain.WordRecord{
				{Target: "cat", Translation: "кот", CorrectAnswers: 2},
				{Target: "dog", Translation: "собака", CorrectAnswers: 0},
			},
		},
		{
			name:     "no words",
			mockRows: sqlmock.NewRows([]string{"target_word", "translate_word", "correct_answers"}),
			expected: nil,
		},
		{
			name:          "query error",
			mockError:     fmt.Errorf("query error"),
			expectedError: true,
		},
		{
			name: "scan error",
			mockRows: sqlmock.NewRows([]string{"target_word", "translate_word", "correct_answers"}).
				AddRow("cat", "кот", "invalid"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewWordRepo(db)

			userID := int64(123)

			if tt.mockError != nil {
				mock.ExpectQuery(listWordsQuery).WithArgs(userID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(listWordsQuery).WithArgs(userID).WillReturnRows(tt.mockRows)
			}

			words, err := repo.ListWords(context.Background(), userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, words)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, words)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepo_AddWord(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	userID := int64(123)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users \\(telegram_id\\)").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO words \\(target_word,translate_word\\) VALUES \\(\\$1,\\$2\\) ON CONFLICT \\(target_word\\) DO NOTHING").
		WithArgs("cat", "кот").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO user_words \\(user_id,word_id,correct_answers\\) " +
		"VALUES \\(\\(SELECT user_id FROM users WHERE telegram_id = \\$1\\)," +
		"\\(SELECT word_id FROM words WHERE target_word = \\$2\\),\\$3\\) " +
		"ON CONFLICT \\(user_id, word_id\\) DO NOTHING").
		WithArgs(userID, "cat", 0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err = repo.AddWord(context.Background(), userID, "cat", "кот")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_AddWord_RollbackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	userID := int64(123)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO words").
		WithArgs("cat", "кот").
		WillReturnError(fmt.Errorf("insert error"))
	mock.ExpectRollback()

	err = repo.AddWord(context.Background(), userID, "cat", "кот")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insert word")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_AddWord_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	mock.ExpectBegin().WillReturnError(fmt.Errorf("connection refused"))

	err = repo.AddWord(context.Background(), 123, "cat", "кот")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_RemoveWord(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)

	userID := int64(123)

	mock.ExpectExec("DELETE FROM user_words " +
		"WHERE user_id = \\(SELECT user_id FROM users WHERE telegram_id = \\$1\\) " +
		"AND word_id = \\(SELECT word_id FROM words WHERE target_word = \\$2\\)").
		WithArgs(userID, "cat").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.RemoveWord(context.Background(), userID, "cat")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_IncrementCorrect(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{
			name: "successful increment",
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("database error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewWordRepo(db)

			userID := int64(123)

			exp := mock.ExpectExec("UPDATE user_words SET correct_answers = correct_answers \\+ 1 " +
				"WHERE user_id = \\(SELECT user_id FROM users WHERE telegram_id = \\$1\\) " +
				"AND word_id = \\(SELECT word_id FROM words WHERE target_word = \\$2\\)").
				WithArgs(userID, "cat")
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err = repo.IncrementCorrect(context.Background(), userID, "cat")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepo_ProgressCounts(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expected      domain.Progress
		expectedError bool
	}{
		{
			name:     "words with answers",
			mockRows: sqlmock.NewRows([]string{"count", "sum"}).AddRow(3, 7),
			expected: domain.Progress{WordCount: 3, TotalCorrect: 7},
		},
		{
			name:     "no words",
			mockRows: sqlmock.NewRows([]string{"count", "sum"}).AddRow(0, 0),
			expected: domain.Progress{},
		},
		{
			name:          "query error",
			mockError:     fmt.Errorf("query error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewWordRepo(db)

			userID := int64(123)
			query := "SELECT COUNT\\(\\*\\), COALESCE\\(SUM\\(correct_answers\\), 0\\) FROM user_words " +
				"WHERE user_id = \\(SELECT user_id FROM users WHERE telegram_id = \\$1\\)"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(userID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(userID).WillReturnRows(tt.mockRows)
			}

			progress, err := repo.ProgressCounts(context.Background(), userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, progress)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
