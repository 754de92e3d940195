package workers

import (
	"context"

	"skylens/verdant/internal/emissions"
	"skylens/verdant/internal/logging"
	"skylens/verdant/internal/services"
)

// PrecomputeWorker warms the analytics caches after a dataset lands: it
// loads the records and runs the full scenario sweep once so the first
// dashboard render hits warm caches. Purely an optimization; every result
// it produces is recomputed on demand if missing.
type PrecomputeWorker struct {
	analytics *services.AnalyticsService
	queue     chan string
}

func NewPrecomputeWorker(analytics *services.AnalyticsService) *PrecomputeWorker {
	return &PrecomputeWorker{
		analytics: analytics,
		queue:     make(chan string, 64),
	}
}

// Enqueue schedules a dataset for cache warming. Non-blocking: when the
// queue is full the dataset is simply computed lazily later.
func (w *PrecomputeWorker) Enqueue(datasetID string) {
	select {
	case w.queue <- datasetID:
	default:
		logging.Warn("Precompute queue full, skipping", "dataset_id", datasetID)
	}
}

// Start consumes the queue until ctx is cancelled.
func (w *PrecomputeWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case datasetID := <-w.queue:
			w.warm(ctx, datasetID)
		}
	}
}

func (w *PrecomputeWorker) warm(ctx context.Context, datasetID string) {
	if _, err := w.analytics.Baseline(ctx, datasetID, emissions.FilterOptions{}); err != nil {
		logging.Warn("Precompute baseline failed", "dataset_id", datasetID, "error", err.Error())
		return
	}
	if _, err := w.analytics.CompareAll(ctx, datasetID, emissions.FilterOptions{}); err != nil {
		logging.Warn("Precompute sweep failed", "dataset_id", datasetID, "error", err.Error())
		return
	}
	logging.Info("Dataset caches warmed", "dataset_id", datasetID)
}
