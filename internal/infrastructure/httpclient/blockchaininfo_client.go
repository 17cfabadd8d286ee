package httpclient

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/pkg/metrics"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const blockchainInfoProvider = "blockchain.info"

type blockchainInfoBalance struct {
	FinalBalance  jsoniter.Number `json:"final_balance"`
	NTx           int64           `json:"n_tx"`
	TotalReceived jsoniter.Number `json:"total_received"`
}

// blockchainInfoClient implements port.BitcoinBalanceClient against
// the blockchain.info balance endpoint.
type blockchainInfoClient struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewBlockchainInfoClient creates a Bitcoin balance client. ratePerSecond
// bounds outgoing requests.
func NewBlockchainInfoClient(baseURL string, timeout time.Duration, ratePerSecond float64, logger *zap.Logger) port.BitcoinBalanceClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &blockchainInfoClient{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		logger:  logger.Named("BlockchainInfoClient"),
	}
}

// FinalBalance implements port.BitcoinBalanceClient.
func (c *blockchainInfoClient) FinalBalance(ctx context.Context, address string) (*big.Int, error) {
	v, err := c.finalBalance(ctx, address)
	metrics.ProviderCalls.WithLabelValues(blockchainInfoProvider, metrics.Outcome(err, apperr.KindOf(err).String())).Inc()
	return v, err
}

func (c *blockchainInfoClient) finalBalance(ctx context.Context, address string) (*big.Int, error) {
	const op = "blockchaininfo.balance"
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("active", address).
		Get("/balance")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn("Failed to execute request to blockchain.info", zap.Error(err))
		return nil, apperr.Unavailable(op, fmt.Errorf("request failed: %w", err))
	}
	if err := classifyHTTPStatus(op, resp.StatusCode(), resp.Body()); err != nil {
		return nil, err
	}

	var payload map[string]blockchainInfoBalance
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, apperr.UpstreamRejected(op, fmt.Errorf("decode response: %w", err))
	}
	entry, ok := payload[address]
	if !ok {
		return nil, apperr.NotFound(op, fmt.Errorf("address %s missing from response", address))
	}
	sats, ok := new(big.Int).SetString(entry.FinalBalance.String(), 10)
	if !ok {
		return nil, apperr.UpstreamRejected(op, errors.New("final_balance is not an integer"))
	}
	return sats, nil
}
