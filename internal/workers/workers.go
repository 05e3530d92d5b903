package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-cinema/internal/config"
	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/metrics"
	"github.com/MKhiriev/go-cinema/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers schedules the subscription sweep and the rating sweep. The
// two jobs share nothing but the storage behind maintenance.
func NewWorkers(maintenance service.MaintenanceService, cfg config.Workers, logger *logger.Logger) *Workers {
	premium := NewPeriodicJob(
		metrics.JobPremiumSweep,
		cfg.PremiumSweepInterval,
		cfg.PremiumSweepBackoff,
		func(ctx context.Context) (int, error) {
			transitions, err := maintenance.SweepPremium(ctx)
			return len(transitions), err
		},
		logger,
	)

	ratings := NewPeriodicJob(
		metrics.JobRatingSweep,
		cfg.RatingSweepInterval,
		0,
		maintenance.RecomputeRatings,
		logger,
	)

	return &Workers{workers: []Worker{premium, ratings}}
}

// Run starts every worker in its own goroutine and blocks until all of
// them have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}
