// Package metrics colectores Prometheus del tablero.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchFailuresTotal fallos por porción de estado (kpis, products, transactions, sales_series, sales_delta).
	FetchFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ricestock_fetch_failures_total",
		Help: "Total number of failed data-service fetches by state slice",
	}, []string{"slice"})

	// StaleResultsDiscarded resultados descartados por pertenecer a una recarga superada.
	StaleResultsDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ricestock_stale_results_discarded_total",
		Help: "Fetch results dropped because a newer refresh already wrote the slice",
	}, []string{"slice"})

	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ricestock_refresh_duration_seconds",
		Help:    "Latency of a full dashboard refresh",
		Buckets: prometheus.DefBuckets,
	})

	// MutationsTotal resultado de altas por tipo (product, transaction) y resultado (ok, rejected, error).
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ricestock_mutations_total",
		Help: "Create operations by kind and outcome",
	}, []string{"kind", "outcome"})

	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ricestock_login_attempts_total",
		Help: "Login attempts by outcome",
	}, []string{"outcome"})
)
