package httpclient

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/pkg/metrics"
	"wallet_aggregator/internal/pkg/utils"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	coinGeckoProvider = "coingecko"
	maxIDsPerRequest  = 250
)

// SymbolToCoinID maps tickers to CoinGecko coin identifiers.
var SymbolToCoinID = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"USDC":  "usd-coin",
	"USDT":  "tether",
	"DAI":   "dai",
	"WETH":  "weth",
	"WBTC":  "wrapped-bitcoin",
	"LINK":  "chainlink",
	"UNI":   "uniswap",
	"MATIC": "matic-network",
	"YFI":   "yearn-finance",
	"AAVE":  "aave",
	"APE":   "apecoin",
	"SHIB":  "shiba-inu",
	"PEPE":  "pepe",
	"STETH": "staked-ether",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"ADA":   "cardano",
	"AVAX":  "avalanche-2",
	"DOT":   "polkadot",
	"XRP":   "ripple",
	"DOGE":  "dogecoin",
	"LTC":   "litecoin",
	"BCH":   "bitcoin-cash",
	"TRX":   "tron",
	"ATOM":  "cosmos",
	"XLM":   "stellar",
	"FIL":   "filecoin",
	"ETC":   "ethereum-classic",
}

// coinGeckoClient implements port.PriceSource over /simple/price.
type coinGeckoClient struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewCoinGeckoClient creates a price source. A non-empty apiKey is sent as
// the pro API header. ratePerMinute bounds outgoing requests.
func NewCoinGeckoClient(baseURL, apiKey string, timeout time.Duration, ratePerMinute float64, logger *zap.Logger) port.PriceSource {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("x-cg-pro-api-key", apiKey)
	}
	return &coinGeckoClient{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(ratePerMinute/60), 1),
		logger:  logger.Named("CoinGeckoClient"),
	}
}

// CoinID implements port.PriceSource.
func (c *coinGeckoClient) CoinID(symbol string) (string, bool) {
	id, ok := SymbolToCoinID[strings.ToUpper(symbol)]
	return id, ok
}

// FetchPrices implements port.PriceSource.
func (c *coinGeckoClient) FetchPrices(ctx context.Context, coinIDs []string, currencies []string) (map[string]map[string]decimal.Decimal, error) {
	prices, err := c.fetchPrices(ctx, coinIDs, currencies)
	metrics.ProviderCalls.WithLabelValues(coinGeckoProvider, metrics.Outcome(err, apperr.KindOf(err).String())).Inc()
	return prices, err
}

func (c *coinGeckoClient) fetchPrices(ctx context.Context, coinIDs []string, currencies []string) (map[string]map[string]decimal.Decimal, error) {
	if len(coinIDs) == 0 || len(currencies) == 0 {
		return map[string]map[string]decimal.Decimal{}, nil
	}

	ids := append([]string(nil), coinIDs...)
	sort.Strings(ids)
	curs := make([]string, len(currencies))
	for i, cur := range currencies {
		curs[i] = strings.ToLower(cur)
	}
	sort.Strings(curs)

	// Long id lists are split to stay under the URL length limit; a failed
	// batch returns what earlier batches fetched along with the error.
	out := make(map[string]map[string]decimal.Decimal, len(ids))
	for _, batch := range utils.BatchStrings(ids, maxIDsPerRequest) {
		if err := c.fetchBatch(ctx, batch, curs, out); err != nil {
			return out, err
		}
	}
	c.logger.Debug("Fetched prices", zap.Int("requested", len(ids)), zap.Int("returned", len(out)))
	return out, nil
}

func (c *coinGeckoClient) fetchBatch(ctx context.Context, ids, curs []string, out map[string]map[string]decimal.Decimal) error {
	const op = "coingecko.simple_price"
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":           strings.Join(ids, ","),
			"vs_currencies": strings.Join(curs, ","),
		}).
		Get("/simple/price")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Warn("Failed to execute request to CoinGecko", zap.Error(err))
		return apperr.Unavailable(op, fmt.Errorf("request failed: %w", err))
	}
	if err := classifyHTTPStatus(op, resp.StatusCode(), resp.Body()); err != nil {
		return err
	}

	var raw map[string]map[string]jsoniter.Number
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return apperr.UpstreamRejected(op, fmt.Errorf("decode response: %w", err))
	}

	for id, byCurrency := range raw {
		for cur, num := range byCurrency {
			price, err := decimal.NewFromString(num.String())
			if err != nil {
				c.logger.Debug("Skipping unparsable price", zap.String("id", id), zap.String("currency", cur), zap.Error(err))
				continue
			}
			if out[id] == nil {
				out[id] = make(map[string]decimal.Decimal, len(byCurrency))
			}
			out[id][strings.ToLower(cur)] = price
		}
	}
	return nil
}
