package middleware

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v3"
)

const msgTooManyMessages = "Слишком много сообщений. Подождите немного и повторите."

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	// warned is set once the user was told about throttling and cleared on the next allowed message
	warned bool
}

// RateLimiter keeps one token bucket per user
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[int64]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewRateLimiter creates a limiter allowing perSecond messages with the given burst per user
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[int64]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether the user may send another message now
func (l *RateLimiter) Allow(userID int64) bool {
	allowed, _ := l.take(userID)
	return allowed
}

// take consumes a token; warn is true for the first rejected message of a throttled streak
func (l *RateLimiter) take(userID int64) (allowed, warn bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[userID]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[userID] = v
	}
	v.lastSeen = now

	if v.limiter.AllowN(now, 1) {
		v.warned = false
		return true, false
	}
	if v.warned {
		return false, false
	}
	v.warned = true
	return false, true
}

// Sweep forgets users not seen for longer than ttl and returns how many were removed
func (l *RateLimiter) Sweep(ttl time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-ttl)
	removed := 0
	for userID, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, userID)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked users
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// RateLimitMiddleware drops updates of users exceeding their rate.
// The first dropped update of a streak is answered with a notice.
func RateLimitMiddleware(limiter *RateLimiter, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			allowed, warn := limiter.take(sender.ID)
			if allowed {
				return next(c)
			}

			logger.Warn("Rate limit exceeded", zap.Int64("user_id", sender.ID))
			if warn {
				return c.Send(msgTooManyMessages)
			}
			return nil
		}
	}
}
