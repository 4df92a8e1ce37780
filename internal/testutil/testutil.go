package testutil

import (
	"math/rand/v2"

	"wordcards/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestRand creates a deterministic random source
func NewTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// NewTestWord creates a test word
func NewTestWord(target, translation string, correct int) domain.WordRecord {
	return domain.WordRecord{
		Target:         target,
		Translation:    translation,
		CorrectAnswers: correct,
	}
}

// NewTestWords creates a vocabulary of n distinct words
func NewTestWords(n int) []domain.WordRecord {
	base := []domain.WordRecord{
		NewTestWord("cat", "кот", 0),
		NewTestWord("dog", "собака", 0),
		NewTestWord("house", "дом", 0),
		NewTestWord("tree", "дерево", 0),
		NewTestWord("sun", "солнце", 0),
		NewTestWord("water", "вода", 0),
		NewTestWord("book", "книга", 0),
		NewTestWord("city", "город", 0),
	}
	if n > len(base) {
		n = len(base)
	}
	words := make([]domain.WordRecord, n)
	copy(words, base[:n])
	return words
}
