package exchange

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"

	"github.com/adshao/go-binance/v2/common"
	bybit "github.com/hirokisan/bybit/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testOptions(baseURL string) Options {
	return Options{Timeout: 2 * time.Second, BinanceBaseURL: baseURL, BybitBaseURL: baseURL, RatePerSecond: 1000}
}

func TestSupportedAndBuilders(t *testing.T) {
	supported := Supported()
	require.Len(t, supported, 2)
	assert.Equal(t, entity.ExchangeBinance, supported[0].ID)
	assert.Equal(t, entity.ExchangeBybit, supported[1].ID)
	for _, info := range supported {
		assert.NotEmpty(t, info.DocsURL)
		assert.NotEmpty(t, info.Features)
	}

	builders := Builders(Options{}, zap.NewNop())
	require.Contains(t, builders, entity.ExchangeBinance)
	require.Contains(t, builders, entity.ExchangeBybit)
	assert.IsType(t, &BinanceBackend{}, builders[entity.ExchangeBinance]("k", "s"))
	assert.IsType(t, &BybitBackend{}, builders[entity.ExchangeBybit]("k", "s"))

	assert.NotEmpty(t, RequiredPermissions())
	assert.Contains(t, ForbiddenPermissions(), "Enable withdrawals")
}

func TestBinanceBackend_Balances(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/ping":
			_, _ = w.Write([]byte(`{}`))
		case "/api/v3/account":
			assert.NotEmpty(t, r.Header.Get("X-MBX-APIKEY"))
			assert.NotEmpty(t, r.URL.Query().Get("signature"))
			_, _ = w.Write([]byte(`{"balances":[
				{"asset":"BTC","free":"0.50000000","locked":"0.10000000"},
				{"asset":"ETH","free":"0.00000000","locked":"0.00000000"}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	b := NewBinanceBackend("api-key-0123456789", "secret-0123456789", testOptions(srv.URL), nil, zap.NewNop())
	require.NoError(t, b.Ping(context.Background()))

	holdings, err := b.Balances(context.Background())
	require.NoError(t, err)
	require.Len(t, holdings, 2)
	assert.Equal(t, "BTC", holdings[0].Symbol)
	assert.True(t, decimal.RequireFromString("0.6").Equal(holdings[0].Balance))
	assert.True(t, holdings[1].Balance.IsZero())
}

func TestBinanceBackend_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"code":-1003,"msg":"Too many requests."}`))
	}))
	defer srv.Close()

	b := NewBinanceBackend("api-key-0123456789", "secret-0123456789", testOptions(srv.URL), nil, zap.NewNop())
	_, err := b.Balances(context.Background())
	assert.True(t, apperr.Is(err, apperr.KindRateLimited))
	assert.Contains(t, err.Error(), "Too many requests")
}

func TestClassifyBinanceError(t *testing.T) {
	wrap := func(code int64, msg string) error {
		return pkgerrors.Wrap(&common.APIError{Code: code, Message: msg}, "call")
	}
	assert.True(t, apperr.Is(classifyBinanceError("op", wrap(-1015, "Too many new orders")), apperr.KindRateLimited))
	assert.True(t, apperr.Is(classifyBinanceError("op", wrap(-2015, "Invalid API-key, IP, or permissions for action.")), apperr.KindUnauthorized))
	assert.True(t, apperr.Is(classifyBinanceError("op", wrap(-1001, "Internal error")), apperr.KindUnavailable))
	assert.True(t, apperr.Is(classifyBinanceError("op", wrap(-1121, "Invalid symbol.")), apperr.KindUpstreamRejected))
	assert.True(t, apperr.Is(classifyBinanceError("op", errors.New("dial tcp: connection refused")), apperr.KindUnavailable))
	assert.ErrorIs(t, classifyBinanceError("op", context.Canceled), context.Canceled)
}

func TestClassifyBybitError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind apperr.Kind
	}{
		{"v5 rate limit", &bybit.RateLimitV5Error{CommonV5Response: &bybit.CommonV5Response{RetCode: 10006, RetMsg: "Too many visits!"}}, apperr.KindRateLimited},
		{"ip rate limit code", &bybit.ErrorResponse{RetCode: 10018, RetMsg: "Exceeded the IP Rate Limit."}, apperr.KindRateLimited},
		{"invalid key", &bybit.ErrorResponse{RetCode: 10003, RetMsg: "API key is invalid."}, apperr.KindUnauthorized},
		{"http 401", fmt.Errorf("%w: invalid key/secret", bybit.ErrInvalidRequest), apperr.KindUnauthorized},
		{"server busy", &bybit.ErrorResponse{RetCode: 10016, RetMsg: "Server error."}, apperr.KindUnavailable},
		{"params error", &bybit.ErrorResponse{RetCode: 10001, RetMsg: "params error"}, apperr.KindUpstreamRejected},
		{"transport", errors.New(`Get "https://api.bybit.com": EOF`), apperr.KindUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyBybitError("op", pkgerrors.Wrap(tc.err, "call"))
			assert.Equal(t, tc.kind, apperr.KindOf(err))
			assert.ErrorIs(t, err, tc.err)
		})
	}
	assert.ErrorIs(t, classifyBybitError("op", context.Canceled), context.Canceled)
}

func newBybitServer(t *testing.T, walletBody string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v3/public/time":
			_, _ = w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"timeSecond":"1700000000","timeNano":"1700000000000000000"},"time":1700000000000}`))
		case "/v5/account/wallet-balance":
			assert.Equal(t, bybitAccountType, r.URL.Query().Get("accountType"))
			assert.NotEmpty(t, r.Header.Get("X-BAPI-API-KEY"))
			assert.NotEmpty(t, r.Header.Get("X-BAPI-SIGN"))
			_, _ = w.Write([]byte(walletBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBybitBackend_Ping(t *testing.T) {
	srv := newBybitServer(t, `{}`)
	b := NewBybitBackend("api-key-0123456789", "secret-0123456789", testOptions(srv.URL), nil, zap.NewNop())
	assert.NoError(t, b.Ping(context.Background()))
}

func TestBybitBackend_PingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	b := NewBybitBackend("api-key-0123456789", "secret-0123456789", testOptions(url), nil, zap.NewNop())
	err := b.Ping(context.Background())
	assert.True(t, apperr.Is(err, apperr.KindUnavailable), err)
}

func TestBybitBackend_Balances(t *testing.T) {
	srv := newBybitServer(t, `{"retCode":0,"retMsg":"OK","result":{"list":[{"accountType":"UNIFIED","totalWalletBalance":"100","coin":[
		{"coin":"BTC","walletBalance":"0.5","free":"","locked":"0"},
		{"coin":"USDT","walletBalance":"","free":"","locked":"0"},
		{"coin":"ETH","walletBalance":"1.25","free":"","locked":"0"}
	]}]},"retExtInfo":{},"time":1700000000000}`)

	b := NewBybitBackend("api-key-0123456789", "secret-0123456789", testOptions(srv.URL), nil, zap.NewNop())
	holdings, err := b.Balances(context.Background())
	require.NoError(t, err)
	require.Len(t, holdings, 2)
	assert.Equal(t, "BTC", holdings[0].Symbol)
	assert.True(t, decimal.RequireFromString("0.5").Equal(holdings[0].Balance))
	assert.Equal(t, "ETH", holdings[1].Symbol)
	assert.True(t, decimal.RequireFromString("1.25").Equal(holdings[1].Balance))
}

func TestBybitBackend_BalancesEmptyList(t *testing.T) {
	srv := newBybitServer(t, `{"retCode":0,"retMsg":"OK","result":{"list":[]},"retExtInfo":{},"time":1700000000000}`)

	b := NewBybitBackend("api-key-0123456789", "secret-0123456789", testOptions(srv.URL), nil, zap.NewNop())
	holdings, err := b.Balances(context.Background())
	require.NoError(t, err)
	assert.Empty(t, holdings)
}

func TestBybitBackend_BalancesErrors(t *testing.T) {
	cases := map[string]struct {
		body string
		kind apperr.Kind
	}{
		"invalid key":  {`{"retCode":10003,"retMsg":"API key is invalid.","result":{},"retExtInfo":{},"time":1}`, apperr.KindUnauthorized},
		"rate limited": {`{"retCode":10006,"retMsg":"Too many visits!","result":{},"retExtInfo":{},"time":1}`, apperr.KindRateLimited},
		"bad balance":  {`{"retCode":0,"retMsg":"OK","result":{"list":[{"coin":[{"coin":"BTC","walletBalance":"n/a"}]}]},"time":1}`, apperr.KindUpstreamRejected},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := newBybitServer(t, tc.body)
			b := NewBybitBackend("api-key-0123456789", "secret-0123456789", testOptions(srv.URL), nil, zap.NewNop())
			_, err := b.Balances(context.Background())
			assert.Equal(t, tc.kind, apperr.KindOf(err), err)
		})
	}
}

func TestBuilders_ShareLimiterPerExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"balances":[{"asset":"BTC","free":"1","locked":"0"}]}`))
	}))
	defer srv.Close()

	opts := testOptions(srv.URL)
	opts.RatePerSecond = 20
	builders := Builders(opts, zap.NewNop())

	first := builders[entity.ExchangeBinance]("api-key-0123456789", "secret-0123456789").(*BinanceBackend)
	second := builders[entity.ExchangeBinance]("api-key-9876543210", "secret-9876543210").(*BinanceBackend)
	assert.Same(t, first.limiter, second.limiter)

	other := builders[entity.ExchangeBybit]("api-key-0123456789", "secret-0123456789").(*BybitBackend)
	assert.NotSame(t, first.limiter, other.limiter)

	// Five calls through freshly built backends: one burst token, then four 50ms waits.
	start := time.Now()
	for i := 0; i < 5; i++ {
		_, err := builders[entity.ExchangeBinance]("api-key-0123456789", "secret-0123456789").Balances(context.Background())
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	defer close(release)

	cancel()
	err := withContext(ctx, func() error {
		<-release
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	assert.NoError(t, withContext(context.Background(), func() error { return nil }))
}
