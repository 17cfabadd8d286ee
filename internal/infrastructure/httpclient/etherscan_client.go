package httpclient

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	etherscanProvider       = "etherscan"
	defaultTokenTxPageSize  = 1000
	defaultTokenDecimals    = 18
	etherscanStatusOK       = "1"
	etherscanNoTransactions = "no transactions found"
)

// etherscanEnvelope is the common response shape: status "1" on success,
// "0" with a message and a string result on business errors.
type etherscanEnvelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Result  jsoniter.RawMessage `json:"result"`
}

type etherscanTokenTx struct {
	ContractAddress string `json:"contractAddress"`
	TokenName       string `json:"tokenName"`
	TokenSymbol     string `json:"tokenSymbol"`
	TokenDecimal    string `json:"tokenDecimal"`
}

// etherscanClient implements port.ExplorerClient over the Etherscan account module.
type etherscanClient struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewEtherscanClient creates an explorer client. ratePerSecond bounds outgoing requests.
func NewEtherscanClient(baseURL, apiKey string, timeout time.Duration, ratePerSecond float64, logger *zap.Logger) port.ExplorerClient {
	return &etherscanClient{
		client:  &fasthttp.Client{Name: "wallet-aggregator"},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		logger:  logger.Named("EtherscanClient"),
	}
}

// NativeBalance implements port.ExplorerClient.
func (c *etherscanClient) NativeBalance(ctx context.Context, address string) (*big.Int, error) {
	const op = "etherscan.balance"
	env, err := c.call(ctx, op, url.Values{
		"module":  {"account"},
		"action":  {"balance"},
		"address": {address},
		"tag":     {"latest"},
	})
	if err != nil {
		return nil, err
	}
	return parseIntResult(op, env.Result)
}

// TokenBalance implements port.ExplorerClient.
func (c *etherscanClient) TokenBalance(ctx context.Context, contract string, address string) (*big.Int, error) {
	const op = "etherscan.tokenbalance"
	env, err := c.call(ctx, op, url.Values{
		"module":          {"account"},
		"action":          {"tokenbalance"},
		"contractaddress": {contract},
		"address":         {address},
		"tag":             {"latest"},
	})
	if err != nil {
		return nil, err
	}
	return parseIntResult(op, env.Result)
}

// TokenTransfers implements port.ExplorerClient. Newest transfers come first,
// so recently touched contracts are discovered first.
func (c *etherscanClient) TokenTransfers(ctx context.Context, address string) ([]entity.TokenInfo, error) {
	const op = "etherscan.tokentx"
	env, err := c.call(ctx, op, url.Values{
		"module":     {"account"},
		"action":     {"tokentx"},
		"address":    {address},
		"startblock": {"0"},
		"endblock":   {"99999999"},
		"page":       {"1"},
		"offset":     {strconv.Itoa(defaultTokenTxPageSize)},
		"sort":       {"desc"},
	})
	if err != nil {
		if errors.Is(err, errNoTransactions) {
			return []entity.TokenInfo{}, nil
		}
		return nil, err
	}

	var txs []etherscanTokenTx
	if err := json.Unmarshal(env.Result, &txs); err != nil {
		return nil, apperr.UpstreamRejected(op, fmt.Errorf("decode token transfers: %w", err))
	}

	seen := make(map[string]struct{}, len(txs))
	tokens := make([]entity.TokenInfo, 0)
	for _, tx := range txs {
		key := strings.ToLower(tx.ContractAddress)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		decimals := uint8(defaultTokenDecimals)
		if d, err := strconv.ParseUint(tx.TokenDecimal, 10, 8); err == nil {
			decimals = uint8(d)
		}
		tokens = append(tokens, entity.TokenInfo{
			Address:  tx.ContractAddress,
			Name:     tx.TokenName,
			Symbol:   strings.ToUpper(tx.TokenSymbol),
			Decimals: decimals,
		})
	}
	c.logger.Debug("Discovered token contracts", zap.String("address", address), zap.Int("count", len(tokens)))
	return tokens, nil
}

var errNoTransactions = errors.New("no transactions found")

func (c *etherscanClient) call(ctx context.Context, op string, params url.Values) (*etherscanEnvelope, error) {
	env, err := c.do(ctx, op, params)
	metrics.ProviderCalls.WithLabelValues(etherscanProvider, metrics.Outcome(err, apperr.KindOf(err).String())).Inc()
	return env, err
}

func (c *etherscanClient) do(ctx context.Context, op string, params url.Values) (*etherscanEnvelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	requestURL := c.baseURL + "?" + params.Encode()

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if !ok || time.Until(deadline) > c.timeout {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Warn("Failed to execute request to Etherscan", zap.String("action", params.Get("action")), zap.Error(err))
		return nil, apperr.Unavailable(op, fmt.Errorf("request failed: %w", err))
	}

	rawBody := resp.Body()
	if err := classifyHTTPStatus(op, resp.StatusCode(), rawBody); err != nil {
		c.logger.Warn("Etherscan API request failed",
			zap.String("action", params.Get("action")),
			zap.Int("statusCode", resp.StatusCode()))
		return nil, err
	}

	var env etherscanEnvelope
	if err := json.Unmarshal(rawBody, &env); err != nil {
		return nil, apperr.UpstreamRejected(op, fmt.Errorf("decode response: %w", err))
	}
	if env.Status != etherscanStatusOK {
		return nil, classifyEtherscanError(op, &env)
	}
	return &env, nil
}

func classifyEtherscanError(op string, env *etherscanEnvelope) error {
	var detail string
	_ = json.Unmarshal(env.Result, &detail)
	msg := strings.TrimSpace(env.Message + ": " + detail)
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, etherscanNoTransactions):
		return errNoTransactions
	case strings.Contains(lower, "rate limit"):
		return apperr.RateLimited(op, errors.New(msg))
	case strings.Contains(lower, "api key"):
		return apperr.Unauthorized(op, errors.New(msg))
	default:
		return apperr.UpstreamRejected(op, errors.New(msg))
	}
}

func parseIntResult(op string, raw jsoniter.RawMessage) (*big.Int, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, apperr.UpstreamRejected(op, fmt.Errorf("decode result: %w", err))
	}
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, apperr.UpstreamRejected(op, fmt.Errorf("result %q is not an integer", s))
	}
	return v, nil
}

// classifyHTTPStatus maps transport-level status codes onto error kinds.
func classifyHTTPStatus(op string, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	err := fmt.Errorf("status %d: %s", status, truncate(string(body), 256))
	switch {
	case status == fasthttp.StatusTooManyRequests:
		return apperr.RateLimited(op, err)
	case status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden:
		return apperr.Unauthorized(op, err)
	case status == fasthttp.StatusNotFound:
		return apperr.NotFound(op, err)
	case status >= 500:
		return apperr.Unavailable(op, err)
	default:
		return apperr.UpstreamRejected(op, err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
