package port

//go:generate mockgen -source=wallet.go -destination=mocks/mock_wallet.go -package=mocks

import (
	"context"

	"wallet_aggregator/internal/domain/entity"
)

// WalletProvider fetches balances for addresses on one chain.
// ValidateAddress is local and runs before any network call.
type WalletProvider interface {
	Chain() entity.Chain
	ValidateAddress(address string) bool
	GetNativeBalance(ctx context.Context, address string) (entity.Holding, error)
	GetTokenBalances(ctx context.Context, address string) ([]entity.Holding, error)
	GetWalletData(ctx context.Context, address string) (entity.WalletData, error)
}

// ExchangeProvider fetches balances from one exchange with a bound key pair.
type ExchangeProvider interface {
	Exchange() entity.ExchangeID
	TestConnection(ctx context.Context) error
	FetchBalances(ctx context.Context) ([]entity.Holding, error)
}

// ExchangeFactory builds exchange providers for a credential pair.
type ExchangeFactory interface {
	NewProvider(exchange entity.ExchangeID, apiKey, apiSecret string) (ExchangeProvider, error)
	Supported() []entity.ExchangeInfo
}

// ExchangeBackend is the raw SDK-facing side of an exchange. Balances may
// contain zero totals and mixed-case symbols; ExchangeProvider normalizes them.
type ExchangeBackend interface {
	Ping(ctx context.Context) error
	Balances(ctx context.Context) ([]entity.Holding, error)
}

// ExchangeBackendBuilder binds a backend to one credential pair.
type ExchangeBackendBuilder func(apiKey, apiSecret string) ExchangeBackend
