package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registry  *prometheus.Registry
	compiles  *prometheus.CounterVec
	duration  prometheus.Histogram
	cacheHits prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		compiles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regexviz_compile_total",
				Help: "Total number of pattern compilations by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "regexviz_compile_duration_seconds",
				Help:    "Duration of pattern compilations",
				Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
			},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "regexviz_cache_hits_total",
				Help: "Total number of export documents served from cache",
			},
		),
	}
	m.registry.MustRegister(m.compiles, m.duration, m.cacheHits)
	return m
}
