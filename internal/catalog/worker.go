package catalog

import (
	"context"
	"log/slog"
	"time"
)

// Worker keeps the catalog warm so request paths seldom wait on a listing
type Worker struct {
	sync     *Synchronizer
	logger   *slog.Logger
	interval time.Duration
}

// NewWorker creates a new catalog warm-up worker
func NewWorker(sync *Synchronizer, logger *slog.Logger, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Worker{
		sync:     sync,
		logger:   logger,
		interval: interval,
	}
}

// Run performs an initial listing and then refreshes ahead of expiry until
// ctx is cancelled
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("catalog worker started", "interval", w.interval)
	w.warm(ctx, true)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("catalog worker stopped")
			return
		case <-ticker.C:
			w.warm(ctx, false)
		}
	}
}

func (w *Worker) warm(ctx context.Context, force bool) {
	if !force {
		if w.sync.backingOff() || !w.sync.expiresWithin(w.interval) {
			return
		}
	}

	if _, err := w.sync.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Warn("catalog warm-up failed", "error", err)
		return
	}

	w.logger.Debug("catalog warm-up completed", "version", w.sync.Status().Version)
}
