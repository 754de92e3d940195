package workers

import (
	"context"

	"skylens/verdant/internal/services"
)

type WorkersContainer struct {
	Precompute *PrecomputeWorker
}

// InitWorkers starts the background workers and wires the precompute
// worker into the dataset service so fresh datasets get warmed.
func InitWorkers(ctx context.Context, analytics *services.AnalyticsService, datasets *services.DatasetService) *WorkersContainer {
	precompute := NewPrecomputeWorker(analytics)
	datasets.SetPrecomputer(precompute)

	go precompute.Start(ctx)

	return &WorkersContainer{
		Precompute: precompute,
	}
}
