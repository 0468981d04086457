package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quotedesk"

// JobMetrics records outcomes of scheduled background jobs.
type JobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	lastRun  *prometheus.GaugeVec
}

// NewJobMetrics registers the job metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "job_duration_seconds",
		Help:      "Duration of scheduled jobs in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_success_total",
		Help:      "Successful scheduled job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_failure_total",
		Help:      "Failed scheduled job executions.",
	}, []string{"job"})
	lastRun := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "job_last_run_timestamp_seconds",
		Help:      "Unix time of the most recent run of each job.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure, lastRun)
	return &JobMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		lastRun:  lastRun,
	}
}

// ObserveRun records the duration and outcome of a completed job run.
func (j *JobMetrics) ObserveRun(job string, duration time.Duration, err error) {
	if j == nil || j.duration == nil {
		return
	}
	label := jobLabel(job)
	j.duration.WithLabelValues(label).Observe(duration.Seconds())
	j.lastRun.WithLabelValues(label).SetToCurrentTime()
	if err != nil {
		j.failure.WithLabelValues(label).Inc()
		return
	}
	j.success.WithLabelValues(label).Inc()
}

func jobLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
