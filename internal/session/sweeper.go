package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper evicts entries unused for longer than ttl
type Sweeper interface {
	Sweep(ttl time.Duration) int
}

// RunSweeper periodically sweeps every target until ctx is done
func RunSweeper(ctx context.Context, interval, ttl time.Duration, logger *zap.Logger, targets ...Sweeper) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session sweeper stopped")
			return
		case <-ticker.C:
			removed := 0
			for _, target := range targets {
				removed += target.Sweep(ttl)
			}
			logger.Debug("Swept stale entries", zap.Int("removed", removed))
		}
	}
}
