package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobMetricsObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	jobs := NewJobMetrics(reg)

	jobs.ObserveRun("catalog-refresh", 250*time.Millisecond, nil)
	jobs.ObserveRun("catalog-refresh", 100*time.Millisecond, errors.New("boom"))

	success := jobs.success.WithLabelValues("catalog-refresh")
	failure := jobs.failure.WithLabelValues("catalog-refresh")
	assert.Equal(t, float64(1), testutil.ToFloat64(success))
	assert.Equal(t, float64(1), testutil.ToFloat64(failure))

	count, err := testutil.GatherAndCount(reg, "quotedesk_job_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestJobMetricsNilRegistererIsNoop(t *testing.T) {
	jobs := NewJobMetrics(nil)
	assert.NotPanics(t, func() {
		jobs.ObserveRun("anything", time.Second, nil)
	})
}

func TestJobMetricsEmptyJobLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	jobs := NewJobMetrics(reg)
	jobs.ObserveRun("", time.Millisecond, nil)
	assert.Equal(t, float64(1), testutil.ToFloat64(jobs.success.WithLabelValues("unknown")))
}

func TestStoreMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := NewStoreMetrics(reg)

	store.IncRead("remote")
	store.IncRead("local")
	store.IncRead("local")
	store.IncFallback()
	store.IncExport("image", "success")
	store.IncExport("pdf", "failure")

	assert.Equal(t, float64(1), testutil.ToFloat64(store.reads.WithLabelValues("remote")))
	assert.Equal(t, float64(2), testutil.ToFloat64(store.reads.WithLabelValues("local")))
	assert.Equal(t, float64(1), testutil.ToFloat64(store.fallbacks))
	assert.Equal(t, float64(1), testutil.ToFloat64(store.exports.WithLabelValues("image", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(store.exports.WithLabelValues("pdf", "failure")))
}

func TestStoreMetricsNilRegistererIsNoop(t *testing.T) {
	store := NewStoreMetrics(nil)
	assert.NotPanics(t, func() {
		store.IncRead("remote")
		store.IncFallback()
		store.IncExport("image", "success")
	})
}
