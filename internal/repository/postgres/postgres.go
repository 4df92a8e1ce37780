package postgres

import (
	sq "github.com/Masterminds/squirrel"
)

// psql builds queries with PostgreSQL $n placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Subqueries keep ? placeholders; the outer psql builder numbers them.

// userIDByTelegram resolves the internal user id inside a query
func userIDByTelegram(telegramID int64) sq.SelectBuilder {
	return sq.Select("user_id").From("users").Where(sq.Eq{"telegram_id": telegramID})
}

// wordIDByTarget resolves the global word id inside a query
func wordIDByTarget(target string) sq.SelectBuilder {
	return sq.Select("word_id").From("words").Where(sq.Eq{"target_word": target})
}
