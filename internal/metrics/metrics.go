// Package metrics defines Prometheus metrics for the Retro Hunter client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "retrohunter"

// Search metrics.
var (
	SearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of eBay search requests issued.",
	})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "Duration of eBay search requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	SearchesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_dropped_total",
		Help:      "Search responses discarded because a newer search superseded them.",
	})
)

// Agent API metrics.
var (
	AgentAPICallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "agent_api_calls_total",
		Help:      "Total agent backend calls by operation.",
	}, []string{"operation"})

	AgentDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "agent_daily_limit_hits_total",
		Help:      "Total number of times the daily agent call quota was reached.",
	})
)

// Endpoint resolver metrics.
var (
	ResolverAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolver_attempts_total",
		Help:      "Candidate endpoint attempts by outcome (accepted, skipped).",
	}, []string{"outcome"})

	ResolverExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolver_exhausted_total",
		Help:      "Logical operations for which every candidate endpoint failed.",
	})
)

// Price refresh metrics.
var (
	PriceRefreshItemsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_refresh_items_total",
		Help:      "Collection items whose prices were refreshed.",
	})

	PriceRefreshErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_refresh_errors_total",
		Help:      "Per-item price refresh failures.",
	})

	PriceRefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "price_refresh_duration_seconds",
		Help:      "Duration of full collection refresh cycles in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Exchange-rate metrics.
var (
	RateRefreshFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_refresh_failures_total",
		Help:      "Exchange-rate refreshes that fell back to the default rate.",
	})

	ExchangeRate = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "exchange_rate_eur_per_usd",
		Help:      "Current cached EUR per USD exchange rate.",
	})
)
