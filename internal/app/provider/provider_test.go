package provider

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/app/port/mocks"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEthAddress = "0xde0B295669a9FD93d5F28D9Ec85E40f4cb697BAe"

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func contractAddress(n int) string {
	return fmt.Sprintf("0x%040x", n+0x1000)
}

func knownTokens() []entity.TokenInfo {
	return []entity.TokenInfo{
		{Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Symbol: "USDC", Decimals: 6},
		{Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F", Symbol: "DAI", Decimals: 18},
	}
}

// positiveProber answers every probe with 1 whole token.
func positiveProber(_ context.Context, _ string, tokens []entity.TokenInfo) ([]entity.BalanceResultItem, error) {
	out := make([]entity.BalanceResultItem, len(tokens))
	for i, tk := range tokens {
		out[i] = entity.BalanceResultItem{Token: tk, Balance: new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(tk.Decimals)), nil)}
	}
	return out, nil
}

func TestEthereumProvider_InvalidAddressNoNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	explorer := mocks.NewMockExplorerClient(ctrl)
	prober := mocks.NewMockTokenBalanceProber(ctrl)
	p := NewEthereumProvider(explorer, knownTokens(), logger.NewSlogAdapter(), WithTokenProber(prober))

	ctx := context.Background()
	_, err := p.GetNativeBalance(ctx, "0x123")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
	assert.ErrorIs(t, err, apperr.ErrInvalidAddress)

	_, err = p.GetTokenBalances(ctx, "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))

	_, err = p.GetWalletData(ctx, "")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestEthereumProvider_GetNativeBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	explorer := mocks.NewMockExplorerClient(ctrl)
	wei, _ := new(big.Int).SetString("2500000000000000000", 10)
	explorer.EXPECT().NativeBalance(gomock.Any(), testEthAddress).Return(wei, nil)

	p := NewEthereumProvider(explorer, nil, logger.NewSlogAdapter())
	h, err := p.GetNativeBalance(context.Background(), testEthAddress)
	require.NoError(t, err)
	assert.Equal(t, "ETH", h.Symbol)
	assert.True(t, decimal.RequireFromString("2.5").Equal(h.Balance))
	assert.Empty(t, h.TokenAddress)
}

func TestEthereumProvider_DiscoveryCap(t *testing.T) {
	ctrl := gomock.NewController(t)
	explorer := mocks.NewMockExplorerClient(ctrl)
	prober := mocks.NewMockTokenBalanceProber(ctrl)

	var transfers []entity.TokenInfo
	for i := 0; i < 25; i++ {
		transfers = append(transfers, entity.TokenInfo{Address: contractAddress(i), Symbol: fmt.Sprintf("t%d", i), Decimals: 18})
	}
	explorer.EXPECT().TokenTransfers(gomock.Any(), testEthAddress).Return(transfers, nil)

	var probed []entity.TokenInfo
	prober.EXPECT().TokenBalances(gomock.Any(), testEthAddress, gomock.Any()).
		DoAndReturn(func(ctx context.Context, addr string, tokens []entity.TokenInfo) ([]entity.BalanceResultItem, error) {
			probed = tokens
			return positiveProber(ctx, addr, tokens)
		})

	p := NewEthereumProvider(explorer, knownTokens(), logger.NewSlogAdapter(), WithTokenProber(prober))
	holdings, err := p.GetTokenBalances(context.Background(), testEthAddress)
	require.NoError(t, err)

	require.Len(t, probed, 2+20)
	assert.Len(t, holdings, 22)
	assert.Equal(t, "USDC", holdings[0].Symbol)
	assert.Equal(t, "DAI", holdings[1].Symbol)
	assert.Equal(t, "T0", holdings[2].Symbol)
	assert.Equal(t, "T19", holdings[21].Symbol)
	assert.Equal(t, contractAddress(19), probed[21].Address)
}

func TestEthereumProvider_DiscoveryDedupAndFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	explorer := mocks.NewMockExplorerClient(ctrl)
	prober := mocks.NewMockTokenBalanceProber(ctrl)

	link := entity.TokenInfo{Address: "0x514910771AF9Ca656af840dff83E8264EcF986CA", Symbol: "LINK", Decimals: 18}
	uni := entity.TokenInfo{Address: "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", Symbol: "UNI", Decimals: 18}
	explorer.EXPECT().TokenTransfers(gomock.Any(), testEthAddress).Return([]entity.TokenInfo{
		link,
		{Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Symbol: "USDC", Decimals: 6},
		{Address: "0x514910771af9ca656af840dff83e8264ecf986ca", Symbol: "LINK", Decimals: 18},
		uni,
	}, nil)

	prober.EXPECT().TokenBalances(gomock.Any(), testEthAddress, []entity.TokenInfo{knownTokens()[0], knownTokens()[1], link, uni}).
		Return([]entity.BalanceResultItem{
			{Token: knownTokens()[0], Balance: big.NewInt(1_500_000)},
			{Token: knownTokens()[1], Balance: big.NewInt(0)},
			{Token: link, Error: apperr.UpstreamRejected("probe", errors.New("NOTOK"))},
			{Token: uni, Balance: big.NewInt(3)},
		}, nil)

	p := NewEthereumProvider(explorer, knownTokens(), logger.NewSlogAdapter(), WithTokenProber(prober))
	holdings, err := p.GetTokenBalances(context.Background(), testEthAddress)
	require.NoError(t, err)

	want := []entity.Holding{
		{Symbol: "USDC", Balance: decimal.RequireFromString("1.5"), TokenAddress: knownTokens()[0].Address},
		{Symbol: "UNI", Balance: decimal.RequireFromString("0.000000000000000003"), TokenAddress: uni.Address},
	}
	if diff := cmp.Diff(want, holdings, decimalComparer); diff != "" {
		t.Errorf("holdings mismatch (-want +got):\n%s", diff)
	}
}

func TestEthereumProvider_DiscoveryFailureDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	explorer := mocks.NewMockExplorerClient(ctrl)
	prober := mocks.NewMockTokenBalanceProber(ctrl)

	explorer.EXPECT().TokenTransfers(gomock.Any(), testEthAddress).
		Return(nil, apperr.RateLimited("tokentx", errors.New("Max rate limit reached")))
	prober.EXPECT().TokenBalances(gomock.Any(), testEthAddress, knownTokens()).DoAndReturn(positiveProber)

	p := NewEthereumProvider(explorer, knownTokens(), logger.NewSlogAdapter(), WithTokenProber(prober))
	holdings, err := p.GetTokenBalances(context.Background(), testEthAddress)
	require.NoError(t, err)
	assert.Len(t, holdings, 2)
}

func TestEthereumProvider_GetWalletData(t *testing.T) {
	t.Run("merges native and tokens", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		explorer := mocks.NewMockExplorerClient(ctrl)
		prober := mocks.NewMockTokenBalanceProber(ctrl)

		explorer.EXPECT().NativeBalance(gomock.Any(), testEthAddress).Return(big.NewInt(1e18), nil)
		explorer.EXPECT().TokenTransfers(gomock.Any(), testEthAddress).Return(nil, nil)
		prober.EXPECT().TokenBalances(gomock.Any(), testEthAddress, gomock.Any()).DoAndReturn(positiveProber)

		p := NewEthereumProvider(explorer, knownTokens(), logger.NewSlogAdapter(), WithTokenProber(prober))
		data, err := p.GetWalletData(context.Background(), testEthAddress)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1).Equal(data.Native.Balance))
		assert.Len(t, data.Tokens, 2)
		assert.Len(t, data.Holdings(), 3)
	})

	t.Run("native failure fails the call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		explorer := mocks.NewMockExplorerClient(ctrl)
		prober := mocks.NewMockTokenBalanceProber(ctrl)

		root := apperr.Unavailable("balance", errors.New("connection reset"))
		explorer.EXPECT().NativeBalance(gomock.Any(), testEthAddress).Return(nil, root)
		explorer.EXPECT().TokenTransfers(gomock.Any(), testEthAddress).Return(nil, nil).AnyTimes()
		prober.EXPECT().TokenBalances(gomock.Any(), testEthAddress, gomock.Any()).DoAndReturn(positiveProber).AnyTimes()

		p := NewEthereumProvider(explorer, knownTokens(), logger.NewSlogAdapter(), WithTokenProber(prober))
		_, err := p.GetWalletData(context.Background(), testEthAddress)
		assert.Same(t, root, err)
	})

	t.Run("token failure degrades", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		explorer := mocks.NewMockExplorerClient(ctrl)
		prober := mocks.NewMockTokenBalanceProber(ctrl)

		explorer.EXPECT().NativeBalance(gomock.Any(), testEthAddress).Return(big.NewInt(5), nil)
		explorer.EXPECT().TokenTransfers(gomock.Any(), testEthAddress).Return(nil, nil)
		prober.EXPECT().TokenBalances(gomock.Any(), testEthAddress, gomock.Any()).Return(nil, context.DeadlineExceeded)

		p := NewEthereumProvider(explorer, knownTokens(), logger.NewSlogAdapter(), WithTokenProber(prober))
		data, err := p.GetWalletData(context.Background(), testEthAddress)
		require.NoError(t, err)
		assert.Empty(t, data.Tokens)
		assert.NotNil(t, data.Tokens)
	})
}

func TestExplorerTokenProber(t *testing.T) {
	ctrl := gomock.NewController(t)
	explorer := mocks.NewMockExplorerClient(ctrl)
	tokens := knownTokens()

	explorer.EXPECT().TokenBalance(gomock.Any(), tokens[0].Address, testEthAddress).Return(big.NewInt(42), nil)
	explorer.EXPECT().TokenBalance(gomock.Any(), tokens[1].Address, testEthAddress).
		Return(nil, apperr.Unavailable("tokenbalance", errors.New("timeout")))

	prober := NewExplorerTokenProber(explorer, 2, logger.NewSlogAdapter())
	results, err := prober.TokenBalances(context.Background(), testEthAddress, tokens)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "USDC", results[0].Token.Symbol)
	assert.Equal(t, int64(42), results[0].Balance.Int64())
	assert.NoError(t, results[0].Error)
	assert.Equal(t, "DAI", results[1].Token.Symbol)
	assert.True(t, apperr.Is(results[1].Error, apperr.KindUnavailable))
}

func TestExplorerTokenProber_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	explorer := mocks.NewMockExplorerClient(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prober := NewExplorerTokenProber(explorer, 1, logger.NewSlogAdapter())
	results, err := prober.TokenBalances(ctx, testEthAddress, knownTokens())
	assert.ErrorIs(t, err, context.Canceled)
	for _, r := range results {
		assert.Error(t, r.Error)
	}
}

func TestBitcoinProvider(t *testing.T) {
	const addr = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"

	t.Run("converts satoshi exactly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockBitcoinBalanceClient(ctrl)
		client.EXPECT().FinalBalance(gomock.Any(), addr).Return(big.NewInt(150_000_001), nil)

		p := NewBitcoinProvider(client, logger.NewSlogAdapter())
		data, err := p.GetWalletData(context.Background(), addr)
		require.NoError(t, err)
		assert.Equal(t, "BTC", data.Native.Symbol)
		assert.Equal(t, "1.50000001", data.Native.Balance.String())
		assert.Empty(t, data.Tokens)
	})

	t.Run("invalid address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := NewBitcoinProvider(mocks.NewMockBitcoinBalanceClient(ctrl), logger.NewSlogAdapter())

		_, err := p.GetNativeBalance(context.Background(), testEthAddress)
		assert.ErrorIs(t, err, apperr.ErrInvalidAddress)
		_, err = p.GetTokenBalances(context.Background(), "nope")
		assert.ErrorIs(t, err, apperr.ErrInvalidAddress)
	})

	t.Run("tokens are always empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := NewBitcoinProvider(mocks.NewMockBitcoinBalanceClient(ctrl), logger.NewSlogAdapter())
		tokens, err := p.GetTokenBalances(context.Background(), addr)
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})

	t.Run("not found propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockBitcoinBalanceClient(ctrl)
		client.EXPECT().FinalBalance(gomock.Any(), addr).Return(nil, apperr.NotFound("balance", errors.New("address not found")))

		_, err := NewBitcoinProvider(client, logger.NewSlogAdapter()).GetNativeBalance(context.Background(), addr)
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})
}

func TestExchangeProvider_FetchBalances(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockExchangeBackend(ctrl)
	backend.EXPECT().Balances(gomock.Any()).Return([]entity.Holding{
		{Symbol: "usdt", Balance: decimal.RequireFromString("100.5")},
		{Symbol: "BTC", Balance: decimal.RequireFromString("0.25")},
		{Symbol: "btc", Balance: decimal.RequireFromString("0.05")},
		{Symbol: "DOGE", Balance: decimal.Zero},
		{Symbol: " ", Balance: decimal.NewFromInt(1)},
	}, nil)

	p := NewExchangeProvider(entity.ExchangeBinance, backend)
	holdings, err := p.FetchBalances(context.Background())
	require.NoError(t, err)

	want := []entity.Holding{
		{Symbol: "BTC", Balance: decimal.RequireFromString("0.3")},
		{Symbol: "USDT", Balance: decimal.RequireFromString("100.5")},
	}
	if diff := cmp.Diff(want, holdings, decimalComparer); diff != "" {
		t.Errorf("holdings mismatch (-want +got):\n%s", diff)
	}
}

func TestExchangeProvider_TestConnection(t *testing.T) {
	t.Run("ping failure stops", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := mocks.NewMockExchangeBackend(ctrl)
		root := apperr.Unavailable("ping", errors.New("dial tcp: i/o timeout"))
		backend.EXPECT().Ping(gomock.Any()).Return(root)

		err := NewExchangeProvider(entity.ExchangeBybit, backend).TestConnection(context.Background())
		assert.Same(t, root, err)
	})

	t.Run("authenticated read surfaces unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := mocks.NewMockExchangeBackend(ctrl)
		backend.EXPECT().Ping(gomock.Any()).Return(nil)
		backend.EXPECT().Balances(gomock.Any()).Return(nil, apperr.Unauthorized("account", errors.New("Invalid API-key")))

		err := NewExchangeProvider(entity.ExchangeBinance, backend).TestConnection(context.Background())
		assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	})
}

func TestExchangeFactory(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockExchangeBackend(ctrl)

	var gotKey, gotSecret string
	builders := map[entity.ExchangeID]port.ExchangeBackendBuilder{
		entity.ExchangeBinance: func(k, s string) port.ExchangeBackend {
			gotKey, gotSecret = k, s
			return backend
		},
	}
	supported := []entity.ExchangeInfo{
		{ID: entity.ExchangeBinance, Name: "Binance"},
		{ID: entity.ExchangeBybit, Name: "Bybit"},
	}
	f := NewExchangeFactory(builders, supported)

	assert.Equal(t, []entity.ExchangeInfo{{ID: entity.ExchangeBinance, Name: "Binance"}}, f.Supported())

	p, err := f.NewProvider(entity.ExchangeBinance, "key", "secret")
	require.NoError(t, err)
	assert.Equal(t, entity.ExchangeBinance, p.Exchange())
	assert.Equal(t, "key", gotKey)
	assert.Equal(t, "secret", gotSecret)

	_, err = f.NewProvider(entity.ExchangeBybit, "key", "secret")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
	_, err = f.NewProvider("kraken", "key", "secret")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
	assert.Contains(t, err.Error(), "unsupported exchange")
}

func TestWalletProviders(t *testing.T) {
	ctrl := gomock.NewController(t)
	eth := NewEthereumProvider(mocks.NewMockExplorerClient(ctrl), nil, logger.NewSlogAdapter())
	btc := NewBitcoinProvider(mocks.NewMockBitcoinBalanceClient(ctrl), logger.NewSlogAdapter())

	m := WalletProviders(eth, btc)
	assert.Same(t, eth, m[entity.ChainEthereum])
	assert.Same(t, btc, m[entity.ChainBitcoin])
}
