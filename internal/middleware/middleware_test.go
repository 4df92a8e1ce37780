package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func newTestContext(t *testing.T, userID int64) tele.Context {
	t.Helper()
	bot, err := tele.NewBot(tele.Settings{Token: "test", Offline: true})
	require.NoError(t, err)

	return bot.NewContext(tele.Update{
		ID: 10,
		Message: &tele.Message{
			Text:   "cat",
			Sender: &tele.User{ID: userID},
			Chat:   &tele.Chat{ID: userID},
		},
	})
}

func TestLoggingMiddleware_SetsRequestID(t *testing.T) {
	c := newTestContext(t, 1)

	var seen string
	handler := LoggingMiddleware(zap.NewNop())(func(c tele.Context) error {
		seen, _ = c.Get(RequestIDKey).(string)
		return nil
	})

	require.NoError(t, handler(c))
	assert.NotEmpty(t, seen)
	assert.Len(t, seen, 36)
}

func TestLoggingMiddleware_PassesError(t *testing.T) {
	c := newTestContext(t, 1)
	boom := errors.New("boom")

	handler := LoggingMiddleware(zap.NewNop())(func(tele.Context) error {
		return boom
	})

	assert.ErrorIs(t, handler(c), boom)
}

func TestRecoverMiddleware(t *testing.T) {
	c := newTestContext(t, 1)

	handler := RecoverMiddleware(zap.NewNop())(func(tele.Context) error {
		panic("boom")
	})

	var err error
	assert.NotPanics(t, func() { err = handler(c) })
	assert.Error(t, err)
}

func TestRateLimiter_Allow(t *testing.T) {
	// Zero refill rate: only the burst is available
	limiter := NewRateLimiter(0, 2)

	assert.True(t, limiter.Allow(1))
	assert.True(t, limiter.Allow(1))
	assert.False(t, limiter.Allow(1))

	// Other users have their own bucket
	assert.True(t, limiter.Allow(2))
}

// recordingContext captures replies instead of calling the Bot API
type recordingContext struct {
	tele.Context
	sent []interface{}
}

func (c *recordingContext) Send(what interface{}, _ ...interface{}) error {
	c.sent = append(c.sent, what)
	return nil
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(0, 1)

	calls := 0
	handler := RateLimitMiddleware(limiter, zap.NewNop())(func(tele.Context) error {
		calls++
		return nil
	})

	first := &recordingContext{Context: newTestContext(t, 1)}
	second := &recordingContext{Context: newTestContext(t, 1)}
	third := &recordingContext{Context: newTestContext(t, 1)}
	other := &recordingContext{Context: newTestContext(t, 2)}

	require.NoError(t, handler(first))
	require.NoError(t, handler(second))
	require.NoError(t, handler(third))
	require.NoError(t, handler(other))

	assert.Equal(t, 2, calls)
	assert.Empty(t, first.sent)
	assert.Equal(t, []interface{}{msgTooManyMessages}, second.sent)
	// One notice per throttled streak
	assert.Empty(t, third.sent)
	assert.Empty(t, other.sent)
}

func TestRateLimiter_NoticeAgainAfterRecovery(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	tests := []struct {
		name    string
		advance time.Duration
		allowed bool
		warn    bool
	}{
		{name: "first message", allowed: true},
		{name: "throttled", allowed: false, warn: true},
		{name: "still throttled", allowed: false, warn: false},
		{name: "token refilled", advance: time.Second, allowed: true},
		{name: "throttled again", allowed: false, warn: true},
	}

	for _, tt := range tests {
		now = now.Add(tt.advance)
		allowed, warn := limiter.take(1)
		assert.Equal(t, tt.allowed, allowed, tt.name)
		assert.Equal(t, tt.warn, warn, tt.name)
	}
}

func TestRateLimiter_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	limiter.Allow(1)
	now = now.Add(2 * time.Hour)
	limiter.Allow(2)

	assert.Equal(t, 1, limiter.Sweep(time.Hour))
	assert.Equal(t, 1, limiter.Len())

	// A forgotten user starts with a full bucket
	assert.True(t, limiter.Allow(1))
}
