package middleware

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// RequestIDKey is the context key holding the update's request id
const RequestIDKey = "request_id"

// LoggingMiddleware tags every update with a request id and logs its receipt
func LoggingMiddleware(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			requestID := uuid.NewString()
			c.Set(RequestIDKey, requestID)

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.Int("update_id", c.Update().ID),
			}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("user_id", sender.ID))
			}

			start := time.Now()
			err := next(c)
			fields = append(fields, zap.Duration("duration", time.Since(start)))

			if err != nil {
				logger.Error("Failed to process update", append(fields, zap.Error(err))...)
				return err
			}
			logger.Debug("Update received", fields...)
			return nil
		}
	}
}
