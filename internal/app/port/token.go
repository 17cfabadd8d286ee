package port

//go:generate mockgen -source=token.go -destination=mocks/mock_token.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceSource is the upstream pricing API.
type PriceSource interface {
	// CoinID maps an uppercase ticker to the upstream coin identifier.
	CoinID(symbol string) (string, bool)

	// FetchPrices returns prices keyed by coin id, then by lowercase currency.
	FetchPrices(ctx context.Context, coinIDs []string, currencies []string) (map[string]map[string]decimal.Decimal, error)
}

// PriceCache serves symbol prices with bounded staleness.
type PriceCache interface {
	// GetPrices returns prices keyed by uppercase symbol, then lowercase currency.
	GetPrices(ctx context.Context, symbols []string, currencies []string) (map[string]map[string]decimal.Decimal, error)

	// GetPrice returns zero when no price is known.
	GetPrice(ctx context.Context, symbol string, currency string) decimal.Decimal
}
