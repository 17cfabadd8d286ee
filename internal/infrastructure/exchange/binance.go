package exchange

import (
	"context"
	"errors"
	"strings"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/pkg/metrics"

	binance "github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const binanceProvider = "binance"

// BinanceBackend reads spot balances through go-binance.
type BinanceBackend struct {
	client  *binance.Client
	limiter *rate.Limiter
	opts    Options
	logger  *zap.Logger
}

// NewBinanceBackend creates a backend. A nil limiter gets a private one at
// opts.RatePerSecond.
func NewBinanceBackend(apiKey, apiSecret string, opts Options, limiter *rate.Limiter, logger *zap.Logger) *BinanceBackend {
	client := binance.NewClient(apiKey, apiSecret)
	client.HTTPClient = httpClient(opts.Timeout)
	if opts.BinanceBaseURL != "" {
		client.BaseURL = opts.BinanceBaseURL
	}
	if limiter == nil {
		limiter = newLimiter(opts.RatePerSecond)
	}
	return &BinanceBackend{
		client:  client,
		limiter: limiter,
		opts:    opts,
		logger:  logger.Named("binance"),
	}
}

var _ port.ExchangeBackend = (*BinanceBackend)(nil)

func (b *BinanceBackend) Ping(ctx context.Context) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, b.opts.Timeout)
	defer cancel()

	err := b.client.NewPingService().Do(ctx)
	b.observe(err)
	if err != nil {
		return classifyBinanceError("binance.ping", pkgerrors.Wrap(err, "failed to ping binance"))
	}
	return nil
}

// Balances returns free plus locked per asset.
func (b *BinanceBackend) Balances(ctx context.Context) ([]entity.Holding, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, b.opts.Timeout)
	defer cancel()

	account, err := b.client.NewGetAccountService().Do(ctx)
	b.observe(err)
	if err != nil {
		return nil, classifyBinanceError("binance.account", pkgerrors.Wrap(err, "failed to get binance account balance"))
	}

	holdings := make([]entity.Holding, 0, len(account.Balances))
	for _, balance := range account.Balances {
		free, err := decimal.NewFromString(balance.Free)
		if err != nil {
			return nil, apperr.UpstreamRejected("binance.account", pkgerrors.Wrap(err, "failed to parse free balance"))
		}
		locked, err := decimal.NewFromString(balance.Locked)
		if err != nil {
			return nil, apperr.UpstreamRejected("binance.account", pkgerrors.Wrap(err, "failed to parse locked balance"))
		}
		holdings = append(holdings, entity.Holding{Symbol: balance.Asset, Balance: free.Add(locked)})
	}
	b.logger.Debug("Fetched binance balances", zap.Int("assets", len(holdings)))
	return holdings, nil
}

func (b *BinanceBackend) observe(err error) {
	metrics.ProviderCalls.WithLabelValues(binanceProvider, metrics.Outcome(err, "error")).Inc()
}

// classifyBinanceError maps API error codes to kinds. Anything that is not an
// API error is a transport failure.
func classifyBinanceError(op string, err error) error {
	var apiErr *common.APIError
	if !errors.As(err, &apiErr) {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return apperr.Unavailable(op, err)
	}
	switch apiErr.Code {
	case -1003, -1015:
		return apperr.RateLimited(op, err)
	case -1002, -1022, -2008, -2014, -2015:
		return apperr.Unauthorized(op, err)
	case -1000, -1001, -1006, -1007, -1016:
		return apperr.Unavailable(op, err)
	}
	if strings.Contains(strings.ToLower(apiErr.Message), "api-key") {
		return apperr.Unauthorized(op, err)
	}
	return apperr.UpstreamRejected(op, err)
}
