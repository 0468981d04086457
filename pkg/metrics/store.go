package metrics

import "github.com/prometheus/client_golang/prometheus"

// StoreMetrics counts quote store reads by the source that served them and
// export attempts by outcome. The fallback counter is the operational signal
// that the remote quote service is degraded.
type StoreMetrics struct {
	reads     *prometheus.CounterVec
	fallbacks prometheus.Counter
	exports   *prometheus.CounterVec
}

// NewStoreMetrics registers the store metrics on the provided registerer. A
// nil registerer yields a no-op recorder.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	reads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_reads_total",
		Help:      "Quote store reads by serving source.",
	}, []string{"source"})
	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_fallbacks_total",
		Help:      "Reads answered from the local mirror because the remote store was unavailable.",
	})
	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Quote export attempts by format and outcome.",
	}, []string{"format", "outcome"})
	reg.MustRegister(reads, fallbacks, exports)
	return &StoreMetrics{
		reads:     reads,
		fallbacks: fallbacks,
		exports:   exports,
	}
}

// IncRead counts a store read served by the given source.
func (s *StoreMetrics) IncRead(source string) {
	if s == nil || s.reads == nil {
		return
	}
	s.reads.WithLabelValues(source).Inc()
}

// IncFallback counts a read that fell back to the local mirror.
func (s *StoreMetrics) IncFallback() {
	if s == nil || s.fallbacks == nil {
		return
	}
	s.fallbacks.Inc()
}

// IncExport counts an export attempt for the given format and outcome.
func (s *StoreMetrics) IncExport(format, outcome string) {
	if s == nil || s.exports == nil {
		return
	}
	s.exports.WithLabelValues(format, outcome).Inc()
}
