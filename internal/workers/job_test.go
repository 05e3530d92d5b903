package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a JobFunc that returns scripted errors and remembers when it
// was called.
type recorder struct {
	mu     sync.Mutex
	calls  []time.Time
	errors []error
	ctxErr []error
}

func (r *recorder) run(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, time.Now())
	r.ctxErr = append(r.ctxErr, ctx.Err())
	if i := len(r.calls) - 1; i < len(r.errors) {
		return 0, r.errors[i]
	}
	return 1, nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func runJob(t *testing.T, job *PeriodicJob) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Run(ctx)
		close(done)
	}()
	return func() {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("job did not stop")
		}
	}
}

func TestPeriodicJob_RunsImmediately(t *testing.T) {
	rec := &recorder{}
	stop := runJob(t, NewPeriodicJob("test_immediate", time.Hour, time.Hour, rec.run, logger.Nop()))
	defer stop()

	assert.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, time.Millisecond)
}

func TestPeriodicJob_BacksOffAfterFailure(t *testing.T) {
	rec := &recorder{errors: []error{errors.New("db unavailable")}}
	stop := runJob(t, NewPeriodicJob("test_backoff", time.Hour, 10*time.Millisecond, rec.run, logger.Nop()))
	defer stop()

	// the failed first iteration is retried after the backoff, not the hour
	assert.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, time.Millisecond)

	// the successful second iteration restores the full interval
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, rec.count())
}

func TestPeriodicJob_StopsBetweenIterations(t *testing.T) {
	rec := &recorder{}
	stop := runJob(t, NewPeriodicJob("test_stop", 5*time.Millisecond, 0, rec.run, logger.Nop()))

	assert.Eventually(t, func() bool { return rec.count() >= 3 }, time.Second, time.Millisecond)
	stop()

	n := rec.count()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, rec.count())

	// iterations ran detached from cancellation
	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, err := range rec.ctxErr {
		assert.NoError(t, err)
	}
}

func TestPeriodicJob_ZeroBackoffUsesInterval(t *testing.T) {
	job := NewPeriodicJob("test_zero_backoff", time.Minute, 0, (&recorder{}).run, logger.Nop())

	require.Equal(t, time.Minute, job.backoff)
}

func TestPeriodicJob_RecordsMetrics(t *testing.T) {
	const name = "test_metrics"
	rec := &recorder{errors: []error{errors.New("boom")}}
	stop := runJob(t, NewPeriodicJob(name, time.Hour, 5*time.Millisecond, rec.run, logger.Nop()))
	defer stop()

	assert.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, time.Millisecond)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.SweepRuns.WithLabelValues(name, metrics.ResultSuccess)) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.SweepRuns.WithLabelValues(name, metrics.ResultError)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.SweepChanges.WithLabelValues(name)))
}
