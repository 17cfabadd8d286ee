package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/pkg/metrics"
	"wallet_aggregator/internal/pkg/retry"
	"wallet_aggregator/internal/pkg/validate"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrentRefreshes = 10

var hundred = decimal.NewFromInt(100)

// ErrNoRepository is returned by persistence operations when no account store is configured.
var ErrNoRepository = errors.New("account repository is not configured")

// AggregatorDeps groups the collaborators of the Aggregator. Repository and
// Clock are optional.
type AggregatorDeps struct {
	Wallets    map[entity.Chain]port.WalletProvider
	Exchanges  port.ExchangeFactory
	Prices     port.PriceCache
	Sessions   port.CredentialStore
	Retry      *retry.Policy
	Repository port.AccountRepository
	Logger     port.Logger
	Clock      func() time.Time
}

// AggregatorConfig holds refresh tuning.
type AggregatorConfig struct {
	MaxConcurrentRefreshes int
	// RefreshInterval is the holdings age after which an account is stale.
	RefreshInterval time.Duration
}

// Aggregator implements port.PortfolioService. It owns no accounts itself:
// callers pass the accounts they track.
type Aggregator struct {
	wallets   map[entity.Chain]port.WalletProvider
	exchanges port.ExchangeFactory
	prices    port.PriceCache
	sessions  port.CredentialStore
	retry     *retry.Policy
	repo      port.AccountRepository
	logger    port.Logger
	now       func() time.Time

	maxConcurrent   int
	refreshInterval time.Duration
}

var _ port.PortfolioService = (*Aggregator)(nil)

// NewAggregator creates a new Aggregator.
func NewAggregator(deps AggregatorDeps, cfg AggregatorConfig) *Aggregator {
	if cfg.MaxConcurrentRefreshes <= 0 {
		cfg.MaxConcurrentRefreshes = defaultMaxConcurrentRefreshes
	}
	if deps.Retry == nil {
		deps.Retry = retry.New()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &Aggregator{
		wallets:         deps.Wallets,
		exchanges:       deps.Exchanges,
		prices:          deps.Prices,
		sessions:        deps.Sessions,
		retry:           deps.Retry,
		repo:            deps.Repository,
		logger:          deps.Logger,
		now:             deps.Clock,
		maxConcurrent:   cfg.MaxConcurrentRefreshes,
		refreshInterval: cfg.RefreshInterval,
	}
}

// AddWallet validates the address locally, fetches its balances and returns a
// populated account.
func (a *Aggregator) AddWallet(ctx context.Context, name string, chain entity.Chain, address string) (*entity.Account, error) {
	const op = "aggregator.add_wallet"

	chain = entity.Chain(strings.ToLower(strings.TrimSpace(string(chain))))
	provider, ok := a.wallets[chain]
	if !ok {
		return nil, apperr.Newf(apperr.KindInvalidInput, op, "unsupported chain %q", chain)
	}
	address = strings.TrimSpace(address)
	if !provider.ValidateAddress(address) {
		return nil, apperr.InvalidInput(op, fmt.Errorf("%w: %q on %s", apperr.ErrInvalidAddress, address, chain))
	}

	name = validate.SanitizeName(name, fmt.Sprintf("%s wallet", chain))
	a.logger.Info("Adding wallet", "chain", chain, "name", name)

	data, err := retry.DoWithData(ctx, a.retry, func(ctx context.Context) (entity.WalletData, error) {
		return provider.GetWalletData(ctx, address)
	})
	if err != nil {
		a.logger.Error("Failed to fetch wallet data", "chain", chain, "error", err)
		return nil, err
	}

	account := entity.NewWalletAccount(name, chain, address, a.now())
	account.ReplaceHoldings(data.Holdings(), a.now())
	return account, nil
}

// AddExchange verifies the key pair against the exchange, keeps it in the
// session store and returns a populated account. The account carries no secret.
func (a *Aggregator) AddExchange(ctx context.Context, name string, exchange entity.ExchangeID, apiKey, apiSecret string) (*entity.Account, error) {
	const op = "aggregator.add_exchange"

	apiKey, apiSecret = strings.TrimSpace(apiKey), strings.TrimSpace(apiSecret)
	if err := validate.Credential(apiKey, apiSecret); err != nil {
		return nil, err
	}
	exchange = entity.ExchangeID(strings.ToLower(strings.TrimSpace(string(exchange))))

	provider, err := a.exchanges.NewProvider(exchange, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}

	name = validate.SanitizeName(name, string(exchange))
	a.logger.Info("Adding exchange account", "exchange", exchange, "name", name)

	if err := a.retry.Do(ctx, provider.TestConnection); err != nil {
		a.logger.Warn("Exchange connection test failed", "exchange", exchange, "error", err)
		return nil, err
	}

	account := entity.NewExchangeAccount(name, exchange, a.now())
	if err := a.sessions.StoreCredential(account.ID, apiKey, apiSecret); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	holdings, err := retry.DoWithData(ctx, a.retry, provider.FetchBalances)
	if err != nil {
		a.sessions.RemoveCredential(account.ID)
		a.logger.Error("Failed to fetch exchange balances", "exchange", exchange, "error", err)
		return nil, err
	}
	account.ReplaceHoldings(holdings, a.now())
	return account, nil
}

// Refresh re-fetches the holdings of one account and replaces them in one step.
// On any error the previous holdings stay in place.
func (a *Aggregator) Refresh(ctx context.Context, account *entity.Account) (err error) {
	const op = "aggregator.refresh"

	if !account.Active() {
		return apperr.Newf(apperr.KindNotFound, op, "account %s is not active", account.ID)
	}

	start := time.Now()
	defer func() {
		metrics.RefreshDuration.
			WithLabelValues(string(account.Kind), metrics.Outcome(err, apperr.KindOf(err).String())).
			Observe(time.Since(start).Seconds())
	}()

	var holdings []entity.Holding
	switch account.Kind {
	case entity.AccountKindWallet:
		holdings, err = a.fetchWallet(ctx, account)
	case entity.AccountKindExchange:
		holdings, err = a.fetchExchange(ctx, account)
	default:
		return apperr.Newf(apperr.KindInvalidInput, op, "unknown account kind %q", account.Kind)
	}
	if err != nil {
		a.logger.Warn("Account refresh failed", "account", account.ID, "error", err)
		return err
	}

	account.ReplaceHoldings(holdings, a.now())
	a.logger.Debug("Account refreshed", "account", account.ID, "holdings", len(holdings))

	if a.repo != nil {
		if saveErr := a.repo.SaveHoldingsSnapshot(ctx, account.ID, holdings); saveErr != nil {
			a.logger.Error("Failed to save holdings snapshot", "account", account.ID, "error", saveErr)
		}
	}
	return nil
}

func (a *Aggregator) fetchWallet(ctx context.Context, account *entity.Account) ([]entity.Holding, error) {
	provider, ok := a.wallets[account.Chain]
	if !ok {
		return nil, apperr.Newf(apperr.KindInvalidInput, "aggregator.refresh", "unsupported chain %q", account.Chain)
	}
	data, err := retry.DoWithData(ctx, a.retry, func(ctx context.Context) (entity.WalletData, error) {
		return provider.GetWalletData(ctx, account.Address)
	})
	if err != nil {
		return nil, err
	}
	return data.Holdings(), nil
}

func (a *Aggregator) fetchExchange(ctx context.Context, account *entity.Account) ([]entity.Holding, error) {
	cred, ok := a.sessions.GetCredential(account.ID)
	if !ok {
		return nil, apperr.SessionExpired("aggregator.refresh")
	}
	provider, err := a.exchanges.NewProvider(account.ExchangeID, cred.APIKey, cred.APISecret)
	if err != nil {
		return nil, err
	}
	return retry.DoWithData(ctx, a.retry, provider.FetchBalances)
}

// RefreshAll refreshes accounts concurrently. One failure never aborts the
// others. Accounts not started before ctx is done report ctx.Err().
func (a *Aggregator) RefreshAll(ctx context.Context, accounts []*entity.Account) []entity.RefreshResult {
	results := make([]entity.RefreshResult, len(accounts))

	g := new(errgroup.Group)
	g.SetLimit(a.maxConcurrent)

	for i, account := range accounts {
		results[i].AccountID = account.ID
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		i, account := i, account
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Err = a.Refresh(ctx, account)
			return nil
		})
	}
	_ = g.Wait()

	if failed := entity.Failed(results); len(failed) > 0 {
		a.logger.Warn("Some accounts failed to refresh", "failed", len(failed), "total", len(results))
	}
	return results
}

// Valuate prices every holding with one cache lookup and sums balance × price.
// Holdings without a price count as zero.
func (a *Aggregator) Valuate(ctx context.Context, account *entity.Account, baseCurrency string) decimal.Decimal {
	return a.valuate(ctx, account.Holdings(), normalizeCurrency(baseCurrency))
}

func (a *Aggregator) valuate(ctx context.Context, holdings []entity.Holding, base string) decimal.Decimal {
	if len(holdings) == 0 {
		return decimal.Zero
	}

	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}

	prices, err := a.prices.GetPrices(ctx, symbols, []string{base})
	if err != nil {
		a.logger.Warn("Price lookup incomplete, unpriced holdings count as zero", "error", err)
	}

	total := decimal.Zero
	for _, h := range holdings {
		price, ok := prices[strings.ToUpper(h.Symbol)][base]
		if !ok {
			continue
		}
		total = total.Add(h.Balance.Mul(price))
	}
	return total
}

// PortfolioTotal values every active account and computes each one's share
// of the total in percent.
func (a *Aggregator) PortfolioTotal(ctx context.Context, accounts []*entity.Account, baseCurrency string) entity.Portfolio {
	base := normalizeCurrency(baseCurrency)
	portfolio := entity.Portfolio{
		BaseCurrency: base,
		Total:        decimal.Zero,
		Accounts:     make([]entity.AccountValuation, 0, len(accounts)),
	}

	for _, account := range accounts {
		if !account.Active() {
			continue
		}
		value := a.valuate(ctx, account.Holdings(), base)
		portfolio.Total = portfolio.Total.Add(value)
		portfolio.Accounts = append(portfolio.Accounts, entity.AccountValuation{
			AccountID: account.ID,
			Name:      account.Name,
			Kind:      account.Kind,
			Value:     value,
			Share:     decimal.Zero,
		})
	}

	if portfolio.Total.IsPositive() {
		for i := range portfolio.Accounts {
			portfolio.Accounts[i].Share = portfolio.Accounts[i].Value.Mul(hundred).Div(portfolio.Total)
		}
	}
	return portfolio
}

// State derives the lifecycle state of an account.
func (a *Aggregator) State(account *entity.Account) entity.AccountState {
	if account.Kind == entity.AccountKindExchange && !a.sessions.HasCredential(account.ID) {
		return entity.AccountStateCredentialMissing
	}
	last := account.LastUpdated()
	switch {
	case last.IsZero():
		return entity.AccountStateCreated
	case a.refreshInterval > 0 && a.now().Sub(last) > a.refreshInterval:
		return entity.AccountStateStale
	default:
		return entity.AccountStatePopulated
	}
}

// SaveAccount persists account metadata and its current holdings. The store
// row id is written back to the account.
func (a *Aggregator) SaveAccount(ctx context.Context, account *entity.Account) error {
	if a.repo == nil {
		return ErrNoRepository
	}
	id, err := a.repo.SaveAccountMetadata(ctx, account.Metadata())
	if err != nil {
		return fmt.Errorf("save account %s: %w", account.ID, err)
	}
	account.SetStoreID(id)

	if err := a.repo.SaveHoldingsSnapshot(ctx, account.ID, account.Holdings()); err != nil {
		return fmt.Errorf("save holdings of %s: %w", account.ID, err)
	}
	return nil
}

// LoadAccounts restores active accounts with their last holdings snapshot.
// Credentials are not restored; exchange accounts come back CredentialMissing.
func (a *Aggregator) LoadAccounts(ctx context.Context) ([]*entity.Account, error) {
	if a.repo == nil {
		return nil, nil
	}
	metas, err := a.repo.LoadAllAccountMetadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	accounts := make([]*entity.Account, 0, len(metas))
	for _, meta := range metas {
		if !meta.Active {
			continue
		}
		account := entity.AccountFromMetadata(meta)
		holdings, err := a.repo.LoadHoldings(ctx, meta.ID)
		if err != nil {
			a.logger.Warn("Failed to load holdings snapshot", "account", meta.ID, "error", err)
		} else if len(holdings) > 0 {
			account.ReplaceHoldings(holdings, meta.LastUpdated)
		}
		accounts = append(accounts, account)
	}
	a.logger.Info("Accounts loaded", "count", len(accounts))
	return accounts, nil
}

// RemoveAccount deactivates the account, erases its credential and soft-deletes it in the store.
func (a *Aggregator) RemoveAccount(ctx context.Context, account *entity.Account) error {
	account.Deactivate()
	if account.Kind == entity.AccountKindExchange {
		a.sessions.RemoveCredential(account.ID)
	}
	if a.repo == nil {
		return nil
	}
	if err := a.repo.DeleteAccount(ctx, account.ID); err != nil {
		return fmt.Errorf("delete account %s: %w", account.ID, err)
	}
	return nil
}

// SupportedExchanges lists exchanges accepted by AddExchange, sorted by id.
func (a *Aggregator) SupportedExchanges() []entity.ExchangeInfo {
	out := a.exchanges.Supported()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func normalizeCurrency(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" {
		return "usd"
	}
	return c
}
