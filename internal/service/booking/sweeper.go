// internal/service/booking/sweeper.go
package booking

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically drives the engine's bulk return path. It runs once
// immediately, then on every tick until the context is cancelled.
type Sweeper struct {
	svc      *Service
	interval time.Duration
	logger   *zap.Logger
}

func NewSweeper(svc *Service, interval time.Duration, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Sweeper{
		svc:      svc,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled. Intended to run in its own goroutine.
func (w *Sweeper) Run(ctx context.Context) {
	w.logger.Info("overdue sweeper started", zap.Duration("interval", w.interval))

	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("overdue sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Sweeper) sweep(ctx context.Context) {
	swept, err := w.svc.SweepOverdue(ctx)
	if err != nil {
		w.logger.Error("overdue sweep failed", zap.Error(err))
		return
	}
	if swept > 0 {
		w.logger.Info("overdue sweep completed", zap.Int("returned", swept))
	}
}
