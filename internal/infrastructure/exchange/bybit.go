package exchange

import (
	"context"
	"errors"
	"strings"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/pkg/metrics"

	bybit "github.com/hirokisan/bybit/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	bybitProvider    = "bybit"
	bybitAccountType = "UNIFIED"
)

// BybitBackend reads the unified account wallet through the bybit V5 API.
type BybitBackend struct {
	client  *bybit.Client
	limiter *rate.Limiter
	opts    Options
	logger  *zap.Logger
}

// NewBybitBackend creates a backend. A nil limiter gets a private one at
// opts.RatePerSecond; Builders passes one limiter shared by every bybit key.
func NewBybitBackend(apiKey, apiSecret string, opts Options, limiter *rate.Limiter, logger *zap.Logger) *BybitBackend {
	client := bybit.NewClient().WithAuth(apiKey, apiSecret).WithHTTPClient(httpClient(opts.Timeout))
	if opts.BybitBaseURL != "" {
		client = client.WithBaseURL(opts.BybitBaseURL)
	}
	if limiter == nil {
		limiter = newLimiter(opts.RatePerSecond)
	}
	return &BybitBackend{
		client:  client,
		limiter: limiter,
		opts:    opts,
		logger:  logger.Named("bybit"),
	}
}

var _ port.ExchangeBackend = (*BybitBackend)(nil)

func (b *BybitBackend) Ping(ctx context.Context) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	err := withContext(ctx, func() error {
		_, err := b.client.NewTimeService().GetServerTime()
		return err
	})
	b.observe(err)
	if err != nil {
		return classifyBybitError("bybit.ping", pkgerrors.Wrap(err, "failed to reach bybit"))
	}
	return nil
}

func (b *BybitBackend) Balances(ctx context.Context) ([]entity.Holding, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var holdings []entity.Holding
	err := withContext(ctx, func() error {
		res, err := b.client.V5().Account().GetWalletBalance(bybit.AccountTypeV5(bybitAccountType), nil)
		if err != nil {
			return err
		}
		if len(res.Result.List) == 0 {
			holdings = []entity.Holding{}
			return nil
		}
		for _, coin := range res.Result.List[0].Coin {
			if coin.WalletBalance == "" {
				continue
			}
			bal, err := decimal.NewFromString(coin.WalletBalance)
			if err != nil {
				return apperr.UpstreamRejected("bybit.wallet", pkgerrors.Wrapf(err, "failed to parse %s balance", coin.Coin))
			}
			holdings = append(holdings, entity.Holding{Symbol: string(coin.Coin), Balance: bal})
		}
		return nil
	})
	b.observe(err)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindUnknown {
			return nil, err
		}
		return nil, classifyBybitError("bybit.wallet", pkgerrors.Wrap(err, "failed to get bybit wallet balance"))
	}
	b.logger.Debug("Fetched bybit balances", zap.Int("assets", len(holdings)))
	return holdings, nil
}

func (b *BybitBackend) observe(err error) {
	metrics.ProviderCalls.WithLabelValues(bybitProvider, metrics.Outcome(err, "error")).Inc()
}

// withContext runs a context-less SDK call and stops waiting when ctx ends.
// The call itself is bounded by the HTTP client timeout.
func withContext(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// classifyBybitError maps SDK error types and V5 retCodes to kinds. Anything
// the SDK did not decode is a transport failure.
func classifyBybitError(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var rateErr *bybit.RateLimitV5Error
	var legacyRateErr *bybit.RateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &legacyRateErr) {
		return apperr.RateLimited(op, err)
	}
	if errors.Is(err, bybit.ErrInvalidRequest) || errors.Is(err, bybit.ErrForbiddenRequest) {
		return apperr.Unauthorized(op, err)
	}

	var apiErr *bybit.ErrorResponse
	if !errors.As(err, &apiErr) {
		return apperr.Unavailable(op, err)
	}
	switch apiErr.RetCode {
	case 10006, 10018:
		return apperr.RateLimited(op, err)
	case 10003, 10004, 10005, 10007, 33004:
		return apperr.Unauthorized(op, err)
	case 10000, 10016:
		return apperr.Unavailable(op, err)
	}
	if strings.Contains(strings.ToLower(apiErr.RetMsg), "api key") {
		return apperr.Unauthorized(op, err)
	}
	return apperr.UpstreamRejected(op, err)
}
