package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the Prometheus instruments for art generation.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	ArtStarted   prometheus.Counter
	ArtCompleted prometheus.Counter
	ArtFailed    prometheus.Counter
	ArtDuration  prometheus.Histogram

	registry *prometheus.Registry
}

// New registers all instruments with a fresh registry and returns the
// populated Metrics struct. A custom registry (instead of
// prometheus.DefaultRegisterer) keeps tests isolated.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		ArtStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "art_generation_started_total",
			Help: "Total art generations started.",
		}),
		ArtCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "art_generation_completed_total",
			Help: "Total art generations completed.",
		}),
		ArtFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "art_generation_failed_total",
			Help: "Total art generations failed.",
		}),
		ArtDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "art_generation_duration_ms",
			Help:    "Art generation duration in milliseconds.",
			Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
		}),
		registry: reg,
	}

	reg.MustRegister(m.ArtStarted, m.ArtCompleted, m.ArtFailed, m.ArtDuration)
	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
