package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/metrics"
)

// JobFunc performs one iteration of a periodic job and reports how many
// rows it changed.
type JobFunc func(ctx context.Context) (changed int, err error)

// PeriodicJob calls fn, then sleeps interval after a successful iteration
// or backoff after a failed one. The first iteration starts immediately.
type PeriodicJob struct {
	name     string
	interval time.Duration
	backoff  time.Duration
	fn       JobFunc
	logger   *logger.Logger
}

// NewPeriodicJob creates a job named name. A non-positive backoff means
// the job waits the full interval after failures too.
func NewPeriodicJob(name string, interval, backoff time.Duration, fn JobFunc, logger *logger.Logger) *PeriodicJob {
	if backoff <= 0 {
		backoff = interval
	}
	return &PeriodicJob{
		name:     name,
		interval: interval,
		backoff:  backoff,
		fn:       fn,
		logger:   logger.WithComponent(name),
	}
}

// Run implements Worker. Cancellation is only observed between iterations;
// a running iteration is detached from ctx so a sweep is never cut in half.
func (j *PeriodicJob) Run(ctx context.Context) {
	j.logger.Info().Dur("interval", j.interval).Dur("backoff", j.backoff).Msg("job started")

	for {
		wait := j.interval
		if err := j.iterate(ctx); err != nil {
			wait = j.backoff
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			j.logger.Info().Msg("job stopped")
			return
		case <-timer.C:
		}
	}
}

func (j *PeriodicJob) iterate(ctx context.Context) error {
	ctx = j.logger.WithContext(context.WithoutCancel(ctx))
	started := time.Now()

	changed, err := j.fn(ctx)
	metrics.SweepChanges.WithLabelValues(j.name).Add(float64(changed))
	if err != nil {
		metrics.SweepRuns.WithLabelValues(j.name, metrics.ResultError).Inc()
		j.logger.Err(err).
			Int("changed", changed).
			Dur("retry_in", j.backoff).
			Msg("job iteration failed")
		return err
	}

	metrics.SweepRuns.WithLabelValues(j.name, metrics.ResultSuccess).Inc()
	j.logger.Debug().
		Int("changed", changed).
		Dur("took", time.Since(started)).
		Msg("job iteration finished")
	return nil
}
