package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder records lookup and verdict counts on a Prometheus
// registry.
type PrometheusRecorder struct {
	lookupsTotal      *prometheus.CounterVec
	requirementsFound *prometheus.CounterVec
	verdictsTotal     *prometheus.CounterVec
}

// NewPrometheusRecorder creates a recorder registered on the default
// Prometheus registerer.
func NewPrometheusRecorder() (*PrometheusRecorder, error) {
	return NewPrometheusRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPrometheusRecorderWithRegistry creates a recorder registered on a
// custom registerer. Use this for testing.
func NewPrometheusRecorderWithRegistry(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	lookupsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scopekit_lookups_total",
		Help: "Total requirement registry lookups",
	}, []string{"kind"})

	requirementsFound := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scopekit_requirements_found_total",
		Help: "Total requirements produced by registry lookups",
	}, []string{"kind"})

	verdictsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scopekit_verdicts_total",
		Help: "Total scope specification verdicts",
	}, []string{"kind", "result"})

	for _, c := range []prometheus.Collector{lookupsTotal, requirementsFound, verdictsTotal} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering scopekit collectors: %w", err)
		}
	}

	return &PrometheusRecorder{
		lookupsTotal:      lookupsTotal,
		requirementsFound: requirementsFound,
		verdictsTotal:     verdictsTotal,
	}, nil
}

// LookupCompleted records one registry lookup and its result count.
func (p *PrometheusRecorder) LookupCompleted(kind string, results int) {
	p.lookupsTotal.WithLabelValues(kind).Inc()
	p.requirementsFound.WithLabelValues(kind).Add(float64(results))
}

// VerdictReturned records one specification verdict.
func (p *PrometheusRecorder) VerdictReturned(kind string, result string) {
	p.verdictsTotal.WithLabelValues(kind, result).Inc()
}

var _ Recorder = (*PrometheusRecorder)(nil)
