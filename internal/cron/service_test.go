package cron

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwayev/quotedesk-backend/pkg/logger"
	"github.com/fairwayev/quotedesk-backend/pkg/metrics"
)

type stubJob struct {
	name string
	runs int
	err  error
}

func (j *stubJob) Name() string { return j.name }

func (j *stubJob) Run(ctx context.Context) error {
	j.runs++
	return j.err
}

type stubLock struct {
	acquired   bool
	acquireErr error
	releases   int
}

func (l *stubLock) Acquire(ctx context.Context) (bool, error) {
	return l.acquired, l.acquireErr
}

func (l *stubLock) Release(ctx context.Context) error {
	l.releases++
	return nil
}

func testCronLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cron-test", Output: io.Discard})
}

func newTestService(t *testing.T, lock Lock, jobs ...Job) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Logger:   testCronLogger(),
		Registry: NewRegistry(jobs...),
		Lock:     lock,
		Metrics:  metrics.NewJobMetrics(nil),
		Interval: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresLogger(t *testing.T) {
	_, err := NewService(ServiceParams{Lock: NoopLock{}})
	assert.Error(t, err)
}

func TestNewServiceRequiresLock(t *testing.T) {
	_, err := NewService(ServiceParams{Logger: testCronLogger()})
	assert.Error(t, err)
}

func TestRunCycleRunsAllJobs(t *testing.T) {
	first := &stubJob{name: "first"}
	second := &stubJob{name: "second"}
	lock := &stubLock{acquired: true}
	svc := newTestService(t, lock, first, second)

	err := svc.RunCycle(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, first.runs)
	assert.Equal(t, 1, second.runs)
	assert.Equal(t, 1, lock.releases)
}

func TestRunCycleSkipsWhenLockHeldElsewhere(t *testing.T) {
	job := &stubJob{name: "skipped"}
	lock := &stubLock{acquired: false}
	svc := newTestService(t, lock, job)

	err := svc.RunCycle(context.Background())

	require.NoError(t, err)
	assert.Zero(t, job.runs)
	assert.Zero(t, lock.releases, "lock should not be released when never acquired")
}

func TestRunCycleFailingJobDoesNotStopOthers(t *testing.T) {
	failing := &stubJob{name: "broken", err: errors.New("upstream down")}
	healthy := &stubJob{name: "healthy"}
	lock := &stubLock{acquired: true}
	svc := newTestService(t, lock, failing, healthy)

	err := svc.RunCycle(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, 1, healthy.runs)
	assert.Equal(t, 1, lock.releases)
}

func TestRunCycleLockAcquireError(t *testing.T) {
	job := &stubJob{name: "never"}
	lock := &stubLock{acquireErr: errors.New("redis unreachable")}
	svc := newTestService(t, lock, job)

	err := svc.RunCycle(context.Background())

	require.Error(t, err)
	assert.Zero(t, job.runs)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	job := &stubJob{name: "immediate"}
	svc := newTestService(t, &stubLock{acquired: true}, job)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, job.runs, "first cycle runs before the ticker loop")
}

func TestRegistryIgnoresNilJobs(t *testing.T) {
	registry := NewRegistry(nil, &stubJob{name: "only"})
	registry.Register(nil)

	jobs := registry.Jobs()

	require.Len(t, jobs, 1)
	assert.Equal(t, "only", jobs[0].Name())
}

type stubRefresher struct {
	calls int
	err   error
}

func (r *stubRefresher) Refresh(ctx context.Context) error {
	r.calls++
	return r.err
}

func TestCatalogRefreshJob(t *testing.T) {
	refresher := &stubRefresher{}
	job := NewCatalogRefreshJob(refresher)

	assert.Equal(t, "catalog-refresh", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, refresher.calls)

	refresher.err = errors.New("fetch failed")
	assert.Error(t, job.Run(context.Background()))
}
