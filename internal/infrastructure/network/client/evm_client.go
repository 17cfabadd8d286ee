package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/pkg/metrics"
	"wallet_aggregator/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

const rpcProvider = "ethereum-rpc"

// EVMClient probes ERC-20 balances over JSON-RPC batches and implements
// port.TokenBalanceProber.
type EVMClient struct {
	ethClient      *ethclient.Client
	rpcCallTimeout time.Duration
	batchSize      int
	logger         *zap.Logger
}

// ERC20 ABI minimal part for balanceOf
const erc20ABI = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`

var (
	parsedERC20ABI  abi.ABI
	parsedERC20Once sync.Once
	erc20MethodID   []byte
)

func initParsedERC20ABI() {
	parsedERC20Once.Do(func() {
		var err error
		parsedERC20ABI, err = abi.JSON(strings.NewReader(erc20ABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
		balanceOfMethod, ok := parsedERC20ABI.Methods["balanceOf"]
		if !ok {
			panic("balanceOf method not found in parsed ERC20 ABI")
		}
		erc20MethodID = balanceOfMethod.ID
	})
}

// NewEVMClient dials the first reachable endpoint from rpcURLs.
func NewEVMClient(rpcURLs []string, connectionTimeout, rpcCallTimeout time.Duration, batchSize int, logger *zap.Logger) (*EVMClient, error) {
	initParsedERC20ABI()
	if len(rpcURLs) == 0 {
		return nil, errors.New("no RPC endpoints configured")
	}
	if batchSize <= 0 {
		batchSize = 20
	}
	log := logger.Named("EVMClient")

	var lastErr error
	for _, rpcURL := range rpcURLs {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		client, err := ethclient.DialContext(ctx, rpcURL)
		cancel()

		if err == nil {
			log.Info("Connected to RPC endpoint", zap.String("url", rpcURL))
			return &EVMClient{ethClient: client, rpcCallTimeout: rpcCallTimeout, batchSize: batchSize, logger: log}, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
		log.Warn("RPC endpoint unreachable", zap.String("url", rpcURL), zap.Error(err))
	}

	return nil, fmt.Errorf("all RPC connection attempts failed: %w", lastErr)
}

var _ port.TokenBalanceProber = (*EVMClient)(nil)

// TokenBalances implements port.TokenBalanceProber. Tokens are grouped into
// batches of batchSize; a failed batch marks every item in it as failed.
func (c *EVMClient) TokenBalances(ctx context.Context, address string, tokens []entity.TokenInfo) ([]entity.BalanceResultItem, error) {
	requests := make([]entity.BalanceRequestItem, len(tokens))
	for i, t := range tokens {
		requests[i] = entity.BalanceRequestItem{Type: entity.TokenBalanceRequest, WalletAddress: address, Token: t}
	}

	results := make([]entity.BalanceResultItem, 0, len(requests))
	for start := 0; start < len(requests); start += c.batchSize {
		end := start + c.batchSize
		if end > len(requests) {
			end = len(requests)
		}
		batch, err := c.GetBalances(ctx, requests[start:end])
		metrics.ProviderCalls.WithLabelValues(rpcProvider, metrics.Outcome(err, apperr.KindOf(err).String())).Inc()
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			c.logger.Warn("RPC batch failed", zap.Int("size", end-start), zap.Error(err))
		}
		results = append(results, batch...)
	}
	return results, nil
}

// GetBalances fetches multiple balances using JSON-RPC batch requests.
func (c *EVMClient) GetBalances(ctx context.Context, requests []entity.BalanceRequestItem) ([]entity.BalanceResultItem, error) {
	if len(requests) == 0 {
		return []entity.BalanceResultItem{}, nil
	}

	batchElems := make([]rpc.BatchElem, len(requests))
	results := make([]entity.BalanceResultItem, len(requests))

	for i, reqItem := range requests {
		results[i] = entity.BalanceResultItem{
			Token:    reqItem.Token,
			IsNative: reqItem.Type == entity.NativeBalanceRequest,
		}

		switch reqItem.Type {
		case entity.NativeBalanceRequest:
			batchElems[i] = rpc.BatchElem{
				Method: "eth_getBalance",
				Args:   []interface{}{common.HexToAddress(reqItem.WalletAddress), "latest"},
				Result: new(*hexutil.Big),
			}
		case entity.TokenBalanceRequest:
			paddedWalletAddress := common.LeftPadBytes(common.HexToAddress(reqItem.WalletAddress).Bytes(), 32)
			callData := append(append([]byte{}, erc20MethodID...), paddedWalletAddress...)

			callArgs := map[string]interface{}{
				"to":   common.HexToAddress(reqItem.Token.Address),
				"data": hexutil.Bytes(callData),
			}
			batchElems[i] = rpc.BatchElem{
				Method: "eth_call",
				Args:   []interface{}{callArgs, "latest"},
				Result: new(hexutil.Bytes),
			}
		}
	}

	rpcCallCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	if err := c.ethClient.Client().BatchCallContext(rpcCallCtx, batchElems); err != nil {
		wrapped := apperr.Unavailable("rpc.batch", fmt.Errorf("RPC batch call failed: %w", err))
		for i := range results {
			results[i].Error = wrapped
		}
		return results, wrapped
	}

	for i, elem := range batchElems {
		if elem.Error != nil {
			results[i].Error = fmt.Errorf("failed to fetch %s (%s): %w", requests[i].Token.Symbol, requests[i].Token.Address, elem.Error)
			continue
		}

		switch requests[i].Type {
		case entity.NativeBalanceRequest:
			if result, ok := elem.Result.(**hexutil.Big); ok && result != nil && *result != nil {
				results[i].Balance = (*big.Int)(*result)
			} else {
				results[i].Error = errors.New("failed to decode native balance: unexpected type or nil result")
			}
		case entity.TokenBalanceRequest:
			results[i].Balance, results[i].Error = decodeBalanceOf(elem.Result)
		}
	}
	return results, nil
}

func decodeBalanceOf(result interface{}) (*big.Int, error) {
	raw, ok := result.(*hexutil.Bytes)
	if !ok || raw == nil {
		return nil, errors.New("failed to decode token balance: unexpected type or nil result")
	}
	if len(*raw) == 0 {
		return big.NewInt(0), nil
	}
	unpacked, err := parsedERC20ABI.Unpack("balanceOf", *raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack balanceOf result: %w. Raw: %s", err, hexutil.Encode(*raw))
	}
	if len(unpacked) == 0 {
		return nil, errors.New("balanceOf unpack returned no data")
	}
	balance, ok := unpacked[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("failed to assert unpacked balanceOf result to *big.Int. Got: %T", unpacked[0])
	}
	return balance, nil
}

// Close releases the underlying RPC connection.
func (c *EVMClient) Close() {
	c.ethClient.Close()
}

// FormatBalance is a debugging helper for log lines.
func FormatBalance(item entity.BalanceResultItem) string {
	return utils.FormatBigInt(item.Balance, item.Token.Decimals)
}
