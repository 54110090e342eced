// Package cleanup provides the background cache maintenance worker.
package cleanup

import (
	"context"
	"time"

	"github.com/embedworks/embedvideo-go/internal/infrastructure/caching/manager"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/logging"
)

// Worker periodically purges expired cache entries.
type Worker struct {
	cache    *manager.Manager
	interval time.Duration
	logger   *logging.ChanneledLogger
}

// NewWorker creates a cleanup worker with the configured interval.
func NewWorker(cache *manager.Manager, interval time.Duration, logger *logging.ChanneledLogger) *Worker {
	return &Worker{
		cache:    cache,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the cleanup loop until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Cache().Info("Cache cleanup worker started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Cache().Info("Cache cleanup worker stopping")
			return
		case <-ticker.C:
			start := time.Now()
			purged := w.cache.PurgeExpired()
			if purged > 0 {
				w.logger.Cache().Info("Cache cleanup finished",
					"purged", purged, "duration", time.Since(start))
			}
		}
	}
}
