package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wallet_aggregator"

var (
	// ProviderCalls counts upstream calls by provider and outcome kind.
	ProviderCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_calls_total",
		Help:      "Upstream provider calls partitioned by provider and outcome.",
	}, []string{"provider", "outcome"})

	// Retries counts backoff retries around external calls.
	Retries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retries_total",
		Help:      "Retries performed by the retry policy.",
	})

	// PriceCacheLookups counts price cache hits and misses.
	PriceCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_cache_lookups_total",
		Help:      "Price cache lookups partitioned by result.",
	}, []string{"result"})

	// SessionClears counts credential session wipes by reason.
	SessionClears = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_clears_total",
		Help:      "Credential session clears partitioned by reason.",
	}, []string{"reason"})

	// RefreshDuration observes account refresh latency by account kind.
	RefreshDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "account_refresh_seconds",
		Help:      "Account refresh latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind", "outcome"})

	registerOnce sync.Once
)

// MustRegisterMetrics registers all collectors with the default registry once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ProviderCalls, Retries, PriceCacheLookups, SessionClears, RefreshDuration)
	})
}

// Outcome maps an error to a short label value.
func Outcome(err error, kind string) string {
	if err == nil {
		return "ok"
	}
	return kind
}
