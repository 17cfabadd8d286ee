package exchange

import (
	"net/http"
	"time"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/entity"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout       = 15 * time.Second
	defaultRatePerSecond = 10
)

// Options configures SDK clients for every exchange backend.
type Options struct {
	Timeout        time.Duration
	BinanceBaseURL string // empty keeps the SDK default
	BybitBaseURL   string // empty keeps the SDK default
	RatePerSecond  float64
}

// Supported lists the exchanges with a working backend.
func Supported() []entity.ExchangeInfo {
	return []entity.ExchangeInfo{
		{
			ID:       entity.ExchangeBinance,
			Name:     "Binance",
			DocsURL:  "https://www.binance.com/en/support/faq/360002502072",
			Features: []string{"spot", "futures", "margin"},
		},
		{
			ID:       entity.ExchangeBybit,
			Name:     "Bybit",
			DocsURL:  "https://www.bybit.com/en-US/help-center/bybitHC_Article?id=000001823",
			Features: []string{"spot", "derivatives"},
		},
	}
}

// RequiredPermissions are the API key scopes a read-only aggregator needs.
func RequiredPermissions() []string {
	return []string{"Read account balances", "View spot account"}
}

// ForbiddenPermissions should be disabled on any key handed to the aggregator.
func ForbiddenPermissions() []string {
	return []string{
		"Enable withdrawals",
		"Enable trading",
		"Enable transfers",
		"Enable futures trading",
		"Enable margin trading",
	}
}

// Builders returns one backend constructor per supported exchange. Every
// backend built for the same exchange waits on the same limiter, so the rate
// holds across refreshes and sibling accounts.
func Builders(opts Options, logger *zap.Logger) map[entity.ExchangeID]port.ExchangeBackendBuilder {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = defaultRatePerSecond
	}
	log := logger.Named("exchange")
	binanceLimiter := newLimiter(opts.RatePerSecond)
	bybitLimiter := newLimiter(opts.RatePerSecond)
	return map[entity.ExchangeID]port.ExchangeBackendBuilder{
		entity.ExchangeBinance: func(apiKey, apiSecret string) port.ExchangeBackend {
			return NewBinanceBackend(apiKey, apiSecret, opts, binanceLimiter, log)
		},
		entity.ExchangeBybit: func(apiKey, apiSecret string) port.ExchangeBackend {
			return NewBybitBackend(apiKey, apiSecret, opts, bybitLimiter, log)
		},
	}
}

func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		perSecond = defaultRatePerSecond
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

func httpClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
