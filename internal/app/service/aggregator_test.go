package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/app/port/mocks"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/pkg/logger"
	"wallet_aggregator/internal/pkg/retry"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEthAddress = "0xde0B295669a9FD93d5F28D9Ec85E40f4cb697BAe"
	testAPIKey     = "AbCdEfGhIjKlMnOp1234"
	testAPISecret  = "secretsecretsecret99"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

type aggregatorFixture struct {
	ctrl     *gomock.Controller
	wallet   *mocks.MockWalletProvider
	factory  *mocks.MockExchangeFactory
	exchange *mocks.MockExchangeProvider
	prices   *mocks.MockPriceCache
	repo     *mocks.MockAccountRepository
	sessions *SessionStore
	clock    *fakeClock
	retries  *int32
	agg      *Aggregator
}

func newAggregatorFixture(t *testing.T, withRepo bool) *aggregatorFixture {
	ctrl := gomock.NewController(t)
	f := &aggregatorFixture{
		ctrl:     ctrl,
		wallet:   mocks.NewMockWalletProvider(ctrl),
		factory:  mocks.NewMockExchangeFactory(ctrl),
		exchange: mocks.NewMockExchangeProvider(ctrl),
		prices:   mocks.NewMockPriceCache(ctrl),
		clock:    newFakeClock(),
		retries:  new(int32),
	}
	f.sessions = NewSessionStore(time.Hour, WithSessionClock(f.clock.Now))
	f.sessions.Init()

	policy := retry.New(
		retry.WithSleeper(func(ctx context.Context, _ time.Duration) error { return ctx.Err() }),
		retry.WithOnRetry(func(int, time.Duration, error) { atomic.AddInt32(f.retries, 1) }),
	)

	deps := AggregatorDeps{
		Wallets:   map[entity.Chain]port.WalletProvider{entity.ChainEthereum: f.wallet},
		Exchanges: f.factory,
		Prices:    f.prices,
		Sessions:  f.sessions,
		Retry:     policy,
		Logger:    logger.NewSlogAdapter(),
		Clock:     f.clock.Now,
	}
	if withRepo {
		f.repo = mocks.NewMockAccountRepository(ctrl)
		deps.Repository = f.repo
	}
	f.agg = NewAggregator(deps, AggregatorConfig{MaxConcurrentRefreshes: 2, RefreshInterval: 30 * time.Second})
	return f
}

func holding(symbol, balance string) entity.Holding {
	return entity.Holding{Symbol: symbol, Balance: decimal.RequireFromString(balance)}
}

func priceMap(symbol, currency, price string) map[string]map[string]decimal.Decimal {
	return map[string]map[string]decimal.Decimal{symbol: {currency: decimal.RequireFromString(price)}}
}

func (f *aggregatorFixture) addWallet(t *testing.T, data entity.WalletData) *entity.Account {
	f.wallet.EXPECT().ValidateAddress(testEthAddress).Return(true)
	f.wallet.EXPECT().GetWalletData(gomock.Any(), testEthAddress).Return(data, nil)
	acc, err := f.agg.AddWallet(context.Background(), "main", entity.ChainEthereum, testEthAddress)
	require.NoError(t, err)
	return acc
}

func (f *aggregatorFixture) addExchange(t *testing.T, holdings []entity.Holding) *entity.Account {
	f.factory.EXPECT().NewProvider(entity.ExchangeBinance, testAPIKey, testAPISecret).Return(f.exchange, nil)
	f.exchange.EXPECT().TestConnection(gomock.Any()).Return(nil)
	f.exchange.EXPECT().FetchBalances(gomock.Any()).Return(holdings, nil)
	acc, err := f.agg.AddExchange(context.Background(), "Main", entity.ExchangeBinance, testAPIKey, testAPISecret)
	require.NoError(t, err)
	return acc
}

func TestAggregator_AddWalletAndValuate(t *testing.T) {
	f := newAggregatorFixture(t, false)
	acc := f.addWallet(t, entity.WalletData{Native: holding("X", "2.5"), Tokens: []entity.Holding{}})

	assert.Equal(t, "wallet_ethereum_0xde0b29", acc.ID)
	assert.Equal(t, entity.AccountStatePopulated, f.agg.State(acc))

	f.prices.EXPECT().GetPrices(gomock.Any(), []string{"X"}, []string{"usd"}).
		Return(priceMap("X", "usd", "100"), nil)

	value := f.agg.Valuate(context.Background(), acc, "USD")
	assert.True(t, decimal.NewFromInt(250).Equal(value), value.String())
}

func TestAggregator_AddWalletRejectsBadInput(t *testing.T) {
	f := newAggregatorFixture(t, false)

	_, err := f.agg.AddWallet(context.Background(), "x", entity.ChainBitcoin, "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))

	f.wallet.EXPECT().ValidateAddress("0x123").Return(false)
	_, err = f.agg.AddWallet(context.Background(), "x", entity.ChainEthereum, "0x123")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
	assert.ErrorIs(t, err, apperr.ErrInvalidAddress)
}

func TestAggregator_RetriesTransientFailures(t *testing.T) {
	f := newAggregatorFixture(t, false)

	f.wallet.EXPECT().ValidateAddress(testEthAddress).Return(true)
	gomock.InOrder(
		f.wallet.EXPECT().GetWalletData(gomock.Any(), testEthAddress).
			Return(entity.WalletData{}, apperr.Unavailable("etherscan.balance", errors.New("timeout"))).Times(2),
		f.wallet.EXPECT().GetWalletData(gomock.Any(), testEthAddress).
			Return(entity.WalletData{Native: holding("ETH", "1")}, nil),
	)

	acc, err := f.agg.AddWallet(context.Background(), "", entity.ChainEthereum, testEthAddress)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(f.retries))
	assert.Equal(t, "ethereum wallet", acc.Name)
	assert.Len(t, acc.Holdings(), 1)
}

func TestAggregator_PortfolioTotalShares(t *testing.T) {
	f := newAggregatorFixture(t, false)
	a := entity.NewWalletAccount("a", entity.ChainEthereum, testEthAddress, f.clock.Now())
	a.ReplaceHoldings([]entity.Holding{holding("ETH", "1")}, f.clock.Now())
	b := entity.NewExchangeAccount("b", entity.ExchangeBybit, f.clock.Now())
	b.ReplaceHoldings([]entity.Holding{holding("BTC", "0.5")}, f.clock.Now())
	gone := entity.NewExchangeAccount("gone", entity.ExchangeBybit, f.clock.Now())
	gone.Deactivate()

	f.prices.EXPECT().GetPrices(gomock.Any(), []string{"ETH"}, []string{"usd"}).Return(priceMap("ETH", "usd", "250"), nil)
	f.prices.EXPECT().GetPrices(gomock.Any(), []string{"BTC"}, []string{"usd"}).Return(priceMap("BTC", "usd", "1500"), nil)

	p := f.agg.PortfolioTotal(context.Background(), []*entity.Account{a, b, gone}, "usd")

	want := entity.Portfolio{
		BaseCurrency: "usd",
		Total:        decimal.NewFromInt(1000),
		Accounts: []entity.AccountValuation{
			{AccountID: a.ID, Name: "a", Kind: entity.AccountKindWallet, Value: decimal.NewFromInt(250), Share: decimal.NewFromInt(25)},
			{AccountID: b.ID, Name: "b", Kind: entity.AccountKindExchange, Value: decimal.NewFromInt(750), Share: decimal.NewFromInt(75)},
		},
	}
	if diff := cmp.Diff(want, p, decimalEqual); diff != "" {
		t.Errorf("portfolio mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregator_PortfolioTotalZero(t *testing.T) {
	f := newAggregatorFixture(t, false)
	a := entity.NewWalletAccount("a", entity.ChainEthereum, testEthAddress, f.clock.Now())
	a.ReplaceHoldings([]entity.Holding{holding("NOPRICE", "10")}, f.clock.Now())

	f.prices.EXPECT().GetPrices(gomock.Any(), []string{"NOPRICE"}, []string{"usd"}).
		Return(map[string]map[string]decimal.Decimal{}, nil)

	p := f.agg.PortfolioTotal(context.Background(), []*entity.Account{a}, "")
	assert.True(t, p.Total.IsZero())
	require.Len(t, p.Accounts, 1)
	assert.True(t, p.Accounts[0].Share.IsZero())
}

func TestAggregator_ValuatePartialPrices(t *testing.T) {
	f := newAggregatorFixture(t, false)
	a := entity.NewWalletAccount("a", entity.ChainEthereum, testEthAddress, f.clock.Now())
	a.ReplaceHoldings([]entity.Holding{holding("ETH", "2"), holding("ODD", "5")}, f.clock.Now())

	f.prices.EXPECT().GetPrices(gomock.Any(), []string{"ETH", "ODD"}, []string{"eur"}).
		Return(priceMap("ETH", "eur", "10"), apperr.Unavailable("coingecko", errors.New("502")))

	assert.True(t, decimal.NewFromInt(20).Equal(f.agg.Valuate(context.Background(), a, "eur")))
}

func TestAggregator_ExchangeRefreshAfterSessionExpiry(t *testing.T) {
	f := newAggregatorFixture(t, false)
	acc := f.addExchange(t, []entity.Holding{holding("BTC", "1"), holding("USDT", "100")})
	before := acc.Holdings()

	f.clock.Advance(61 * time.Minute)

	err := f.agg.Refresh(context.Background(), acc)
	assert.True(t, apperr.Is(err, apperr.KindSessionExpired))
	assert.ErrorIs(t, err, apperr.ErrSessionExpired)
	if diff := cmp.Diff(before, acc.Holdings(), decimalEqual); diff != "" {
		t.Errorf("holdings changed (-before +after):\n%s", diff)
	}
	assert.Equal(t, entity.AccountStateCredentialMissing, f.agg.State(acc))
}

func TestAggregator_AddExchangeFailures(t *testing.T) {
	t.Run("malformed credential never reaches the exchange", func(t *testing.T) {
		f := newAggregatorFixture(t, false)
		_, err := f.agg.AddExchange(context.Background(), "x", entity.ExchangeBinance, "short", testAPISecret)
		assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
	})

	t.Run("rejected key is not stored", func(t *testing.T) {
		f := newAggregatorFixture(t, false)
		f.factory.EXPECT().NewProvider(entity.ExchangeBinance, testAPIKey, testAPISecret).Return(f.exchange, nil)
		f.exchange.EXPECT().TestConnection(gomock.Any()).Return(apperr.Unauthorized("binance.ping", errors.New("invalid key")))

		_, err := f.agg.AddExchange(context.Background(), "main", entity.ExchangeBinance, testAPIKey, testAPISecret)
		assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
		assert.Equal(t, 0, f.sessions.Info().CredentialCount)
	})

	t.Run("balance failure drops the stored key", func(t *testing.T) {
		f := newAggregatorFixture(t, false)
		f.factory.EXPECT().NewProvider(entity.ExchangeBinance, testAPIKey, testAPISecret).Return(f.exchange, nil)
		f.exchange.EXPECT().TestConnection(gomock.Any()).Return(nil)
		f.exchange.EXPECT().FetchBalances(gomock.Any()).Return(nil, apperr.UpstreamRejected("binance.account", errors.New("-2010")))

		_, err := f.agg.AddExchange(context.Background(), "main", entity.ExchangeBinance, testAPIKey, testAPISecret)
		assert.True(t, apperr.Is(err, apperr.KindUpstreamRejected))
		assert.False(t, f.sessions.HasCredential(entity.ExchangeAccountID(entity.ExchangeBinance, "main")))
	})

	t.Run("unsupported exchange", func(t *testing.T) {
		f := newAggregatorFixture(t, false)
		f.factory.EXPECT().NewProvider(entity.ExchangeID("kraken"), testAPIKey, testAPISecret).
			Return(nil, apperr.Newf(apperr.KindInvalidInput, "exchange.factory", "unsupported exchange %q", "kraken"))

		_, err := f.agg.AddExchange(context.Background(), "main", "Kraken", testAPIKey, testAPISecret)
		assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
	})
}

func TestAggregator_RefreshIsIdempotent(t *testing.T) {
	f := newAggregatorFixture(t, false)
	data := entity.WalletData{Native: holding("ETH", "1.5"), Tokens: []entity.Holding{{Symbol: "USDC", Balance: decimal.NewFromInt(10), TokenAddress: "0xa0b8"}}}
	acc := f.addWallet(t, data)

	f.wallet.EXPECT().GetWalletData(gomock.Any(), testEthAddress).Return(data, nil).Times(2)

	require.NoError(t, f.agg.Refresh(context.Background(), acc))
	first := acc.Holdings()
	f.clock.Advance(time.Second)
	require.NoError(t, f.agg.Refresh(context.Background(), acc))

	if diff := cmp.Diff(first, acc.Holdings(), decimalEqual); diff != "" {
		t.Errorf("second refresh changed holdings (-first +second):\n%s", diff)
	}
	assert.Equal(t, f.clock.Now(), acc.LastUpdated())
}

func TestAggregator_RefreshKeepsHoldingsOnFailure(t *testing.T) {
	f := newAggregatorFixture(t, false)
	acc := f.addWallet(t, entity.WalletData{Native: holding("ETH", "3")})

	f.wallet.EXPECT().GetWalletData(gomock.Any(), testEthAddress).
		Return(entity.WalletData{}, apperr.UpstreamRejected("etherscan", errors.New("NOTOK")))

	err := f.agg.Refresh(context.Background(), acc)
	assert.True(t, apperr.Is(err, apperr.KindUpstreamRejected))
	require.Len(t, acc.Holdings(), 1)
	assert.Equal(t, "ETH", acc.Holdings()[0].Symbol)
}

func TestAggregator_RefreshAll(t *testing.T) {
	t.Run("failures are isolated and concurrency is bounded", func(t *testing.T) {
		f := newAggregatorFixture(t, false)
		accounts := make([]*entity.Account, 0, 6)
		addresses := []string{
			"0x1111111111111111111111111111111111111111",
			"0x2222222222222222222222222222222222222222",
			"0x3333333333333333333333333333333333333333",
			"0x4444444444444444444444444444444444444444",
			"0x5555555555555555555555555555555555555555",
		}
		for _, addr := range addresses {
			accounts = append(accounts, entity.NewWalletAccount("w", entity.ChainEthereum, addr, f.clock.Now()))
		}

		var inFlight, peak int32
		var mu sync.Mutex
		f.wallet.EXPECT().GetWalletData(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, address string) (entity.WalletData, error) {
				n := atomic.AddInt32(&inFlight, 1)
				mu.Lock()
				if n > peak {
					peak = n
				}
				mu.Unlock()
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				if address == addresses[2] {
					return entity.WalletData{}, apperr.InvalidInput("etherscan", errors.New("bad address"))
				}
				return entity.WalletData{Native: holding("ETH", "1")}, nil
			}).Times(len(addresses))

		results := f.agg.RefreshAll(context.Background(), accounts)
		require.Len(t, results, len(addresses))
		for i, r := range results {
			assert.Equal(t, accounts[i].ID, r.AccountID)
			if i == 2 {
				assert.Error(t, r.Err)
				continue
			}
			assert.NoError(t, r.Err)
			assert.Len(t, accounts[i].Holdings(), 1)
		}
		assert.Len(t, entity.Failed(results), 1)
		assert.LessOrEqual(t, peak, int32(2))
	})

	t.Run("cancelled context starts nothing", func(t *testing.T) {
		f := newAggregatorFixture(t, false)
		acc := entity.NewWalletAccount("w", entity.ChainEthereum, testEthAddress, f.clock.Now())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results := f.agg.RefreshAll(ctx, []*entity.Account{acc, acc})
		for _, r := range results {
			assert.ErrorIs(t, r.Err, context.Canceled)
		}
	})
}

func TestAggregator_State(t *testing.T) {
	f := newAggregatorFixture(t, false)
	acc := entity.NewWalletAccount("w", entity.ChainEthereum, testEthAddress, f.clock.Now())
	assert.Equal(t, entity.AccountStateCreated, f.agg.State(acc))

	acc.ReplaceHoldings(nil, f.clock.Now())
	assert.Equal(t, entity.AccountStatePopulated, f.agg.State(acc))

	f.clock.Advance(31 * time.Second)
	assert.Equal(t, entity.AccountStateStale, f.agg.State(acc))

	ex := entity.NewExchangeAccount("x", entity.ExchangeBybit, f.clock.Now())
	assert.Equal(t, entity.AccountStateCredentialMissing, f.agg.State(ex))
}

func TestAggregator_Persistence(t *testing.T) {
	t.Run("save assigns store id and snapshots holdings", func(t *testing.T) {
		f := newAggregatorFixture(t, true)
		acc := entity.NewWalletAccount("w", entity.ChainEthereum, testEthAddress, f.clock.Now())
		acc.ReplaceHoldings([]entity.Holding{holding("ETH", "1")}, f.clock.Now())

		f.repo.EXPECT().SaveAccountMetadata(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, meta entity.AccountMetadata) (int64, error) {
				assert.Equal(t, acc.ID, meta.ID)
				return 7, nil
			})
		f.repo.EXPECT().SaveHoldingsSnapshot(gomock.Any(), acc.ID, acc.Holdings()).Return(nil)

		require.NoError(t, f.agg.SaveAccount(context.Background(), acc))
		assert.Equal(t, int64(7), acc.StoreID)
	})

	t.Run("save without repository", func(t *testing.T) {
		f := newAggregatorFixture(t, false)
		acc := entity.NewWalletAccount("w", entity.ChainEthereum, testEthAddress, f.clock.Now())
		assert.ErrorIs(t, f.agg.SaveAccount(context.Background(), acc), ErrNoRepository)
	})

	t.Run("load restores active accounts", func(t *testing.T) {
		f := newAggregatorFixture(t, true)
		updated := f.clock.Now().Add(-time.Minute)
		metas := []entity.AccountMetadata{
			{ID: "wallet_ethereum_0xde0b29", StoreID: 1, Name: "w", Kind: entity.AccountKindWallet, Chain: entity.ChainEthereum, Address: testEthAddress, LastUpdated: updated, Active: true},
			{ID: "exchange_bybit_old", StoreID: 2, Name: "old", Kind: entity.AccountKindExchange, ExchangeID: entity.ExchangeBybit, Active: false},
		}
		f.repo.EXPECT().LoadAllAccountMetadata(gomock.Any()).Return(metas, nil)
		f.repo.EXPECT().LoadHoldings(gomock.Any(), "wallet_ethereum_0xde0b29").Return([]entity.Holding{holding("ETH", "4")}, nil)

		accounts, err := f.agg.LoadAccounts(context.Background())
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, int64(1), accounts[0].StoreID)
		assert.Equal(t, updated, accounts[0].LastUpdated())
		assert.Len(t, accounts[0].Holdings(), 1)
		assert.Equal(t, entity.AccountStateStale, f.agg.State(accounts[0]))
	})

	t.Run("refresh snapshot failure is not fatal", func(t *testing.T) {
		f := newAggregatorFixture(t, true)
		acc := f.addWallet(t, entity.WalletData{Native: holding("ETH", "1")})
		f.wallet.EXPECT().GetWalletData(gomock.Any(), testEthAddress).Return(entity.WalletData{Native: holding("ETH", "2")}, nil)
		f.repo.EXPECT().SaveHoldingsSnapshot(gomock.Any(), acc.ID, gomock.Any()).Return(errors.New("disk full"))

		require.NoError(t, f.agg.Refresh(context.Background(), acc))
		assert.True(t, decimal.NewFromInt(2).Equal(acc.Holdings()[0].Balance))
	})

	t.Run("remove erases credential and soft deletes", func(t *testing.T) {
		f := newAggregatorFixture(t, true)
		acc := f.addExchange(t, []entity.Holding{holding("BTC", "1")})
		require.True(t, f.sessions.HasCredential(acc.ID))

		f.repo.EXPECT().DeleteAccount(gomock.Any(), acc.ID).Return(nil)
		require.NoError(t, f.agg.RemoveAccount(context.Background(), acc))

		assert.False(t, acc.Active())
		assert.Empty(t, acc.Holdings())
		assert.False(t, f.sessions.HasCredential(acc.ID))

		err := f.agg.Refresh(context.Background(), acc)
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})
}

func TestAggregator_SupportedExchanges(t *testing.T) {
	f := newAggregatorFixture(t, false)
	f.factory.EXPECT().Supported().Return([]entity.ExchangeInfo{{ID: entity.ExchangeBybit}, {ID: entity.ExchangeBinance}})

	got := f.agg.SupportedExchanges()
	require.Len(t, got, 2)
	assert.Equal(t, entity.ExchangeBinance, got[0].ID)
}

func TestAccountBook(t *testing.T) {
	now := time.Now()
	a := entity.NewWalletAccount("a", entity.ChainEthereum, testEthAddress, now)
	b := entity.NewExchangeAccount("b", entity.ExchangeBybit, now)
	book := NewAccountBook(a, b)

	replacement := entity.NewWalletAccount("a2", entity.ChainEthereum, testEthAddress, now)
	book.Put(replacement)
	assert.Equal(t, 2, book.Len())
	got, ok := book.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, replacement, got)

	b.Deactivate()
	assert.Equal(t, []*entity.Account{replacement}, book.Active())

	assert.True(t, book.Remove(b.ID))
	assert.False(t, book.Remove(b.ID))
	assert.Equal(t, 1, book.Len())
}
