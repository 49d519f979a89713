package experiment

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pdrpinto/gridastar"
)

const (
	outcomeFound       = "found"
	outcomeUnreachable = "unreachable"
	outcomeInvalid     = "invalid_input"
	outcomeAborted     = "aborted"
)

// Metrics holds the Prometheus collectors updated by a Runner.
// A nil *Metrics records nothing.
type Metrics struct {
	searchTotal    *prometheus.CounterVec
	searchDuration prometheus.Histogram
	nodesExplored  prometheus.Histogram
	pathLength     prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		searchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gridastar_search_total",
			Help: "Total searches by outcome",
		}, []string{"outcome"}),
		searchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridastar_search_duration_seconds",
			Help:    "Search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
		}),
		nodesExplored: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridastar_search_nodes_explored",
			Help:    "Nodes expanded per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		pathLength: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridastar_search_path_length",
			Help:    "Path length in cells for successful searches",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
}

func (m *Metrics) observe(res Result, err error) {
	if m == nil {
		return
	}
	m.searchTotal.WithLabelValues(outcomeOf(res, err)).Inc()
	if errors.Is(err, gridastar.ErrInvalidInput) {
		return
	}
	m.searchDuration.Observe(res.Elapsed.Seconds())
	m.nodesExplored.Observe(float64(res.NodesExplored))
	if res.Found {
		m.pathLength.Observe(float64(res.PathLength))
	}
}

func outcomeOf(res Result, err error) string {
	switch {
	case errors.Is(err, gridastar.ErrInvalidInput):
		return outcomeInvalid
	case err != nil:
		return outcomeAborted
	case res.Found:
		return outcomeFound
	default:
		return outcomeUnreachable
	}
}
