package port

//go:generate mockgen -source=portfolio.go -destination=mocks/mock_portfolio.go -package=mocks

import (
	"context"

	"wallet_aggregator/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// AccountRepository persists account metadata and holding snapshots.
// It never receives secrets.
type AccountRepository interface {
	SaveAccountMetadata(ctx context.Context, meta entity.AccountMetadata) (int64, error)
	LoadAllAccountMetadata(ctx context.Context) ([]entity.AccountMetadata, error)
	SaveHoldingsSnapshot(ctx context.Context, accountID string, holdings []entity.Holding) error
	LoadHoldings(ctx context.Context, accountID string) ([]entity.Holding, error)
	DeleteAccount(ctx context.Context, accountID string) error
}

// CredentialStore holds exchange credentials for the lifetime of a session.
type CredentialStore interface {
	StoreCredential(accountID, apiKey, apiSecret string) error
	GetCredential(accountID string) (entity.Credential, bool)
	HasCredential(accountID string) bool
	RemoveCredential(accountID string)
}

// PortfolioService is the aggregator surface used by presentation adapters.
type PortfolioService interface {
	AddWallet(ctx context.Context, name string, chain entity.Chain, address string) (*entity.Account, error)
	AddExchange(ctx context.Context, name string, exchange entity.ExchangeID, apiKey, apiSecret string) (*entity.Account, error)
	Refresh(ctx context.Context, account *entity.Account) error
	RefreshAll(ctx context.Context, accounts []*entity.Account) []entity.RefreshResult
	Valuate(ctx context.Context, account *entity.Account, baseCurrency string) decimal.Decimal
	PortfolioTotal(ctx context.Context, accounts []*entity.Account, baseCurrency string) entity.Portfolio
	State(account *entity.Account) entity.AccountState
	SaveAccount(ctx context.Context, account *entity.Account) error
	LoadAccounts(ctx context.Context) ([]*entity.Account, error)
	RemoveAccount(ctx context.Context, account *entity.Account) error
	SupportedExchanges() []entity.ExchangeInfo
}
