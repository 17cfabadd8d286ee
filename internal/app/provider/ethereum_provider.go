package provider

import (
	"context"
	"strings"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/pkg/utils"
	"wallet_aggregator/internal/pkg/validate"

	"golang.org/x/sync/errgroup"
)

const (
	ethNativeSymbol   = "ETH"
	ethNativeDecimals = 18

	defaultMaxDiscoveredTokens = 20
)

// EthereumProvider implements port.WalletProvider for Ethereum mainnet.
type EthereumProvider struct {
	explorer      port.ExplorerClient
	prober        port.TokenBalanceProber
	knownTokens   []entity.TokenInfo
	maxDiscovered int
	logger        port.Logger
}

// EthereumOption configures an EthereumProvider.
type EthereumOption func(*EthereumProvider)

// WithTokenProber replaces the explorer-backed token prober, e.g. with the
// JSON-RPC batch client.
func WithTokenProber(prober port.TokenBalanceProber) EthereumOption {
	return func(p *EthereumProvider) {
		if prober != nil {
			p.prober = prober
		}
	}
}

// WithMaxDiscoveredTokens bounds the contracts probed from transfer history.
func WithMaxDiscoveredTokens(n int) EthereumOption {
	return func(p *EthereumProvider) {
		if n > 0 {
			p.maxDiscovered = n
		}
	}
}

// NewEthereumProvider creates a provider probing knownTokens first and then up
// to maxDiscovered contracts found in the address's transfer history.
func NewEthereumProvider(explorer port.ExplorerClient, knownTokens []entity.TokenInfo, logger port.Logger, opts ...EthereumOption) *EthereumProvider {
	p := &EthereumProvider{
		explorer:      explorer,
		knownTokens:   knownTokens,
		maxDiscovered: defaultMaxDiscoveredTokens,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.prober == nil {
		p.prober = NewExplorerTokenProber(explorer, 4, logger)
	}
	return p
}

var _ port.WalletProvider = (*EthereumProvider)(nil)

func (p *EthereumProvider) Chain() entity.Chain { return entity.ChainEthereum }

func (p *EthereumProvider) ValidateAddress(address string) bool {
	return validate.EthereumAddress(address)
}

func (p *EthereumProvider) GetNativeBalance(ctx context.Context, address string) (entity.Holding, error) {
	if !p.ValidateAddress(address) {
		return entity.Holding{}, apperr.InvalidInput("ethereum.native", apperr.ErrInvalidAddress)
	}
	wei, err := p.explorer.NativeBalance(ctx, address)
	if err != nil {
		return entity.Holding{}, err
	}
	return entity.Holding{
		Symbol:  ethNativeSymbol,
		Balance: utils.FromSmallestUnit(wei, ethNativeDecimals),
	}, nil
}

// GetTokenBalances probes the allow-list, then contracts discovered from
// transfer history. Failed probes and zero balances are left out; the result
// keeps discovery order.
func (p *EthereumProvider) GetTokenBalances(ctx context.Context, address string) ([]entity.Holding, error) {
	if !p.ValidateAddress(address) {
		return nil, apperr.InvalidInput("ethereum.tokens", apperr.ErrInvalidAddress)
	}

	candidates := make([]entity.TokenInfo, 0, len(p.knownTokens)+p.maxDiscovered)
	candidates = append(candidates, p.knownTokens...)
	candidates = append(candidates, p.discover(ctx, address)...)

	results, err := p.prober.TokenBalances(ctx, address, candidates)
	if err != nil {
		return nil, err
	}

	holdings := make([]entity.Holding, 0, len(results))
	for _, r := range results {
		if r.Error != nil {
			p.logger.Debug("Skipping token after failed probe", "address", address, "contract", r.Token.Address, "error", r.Error)
			continue
		}
		if r.Balance == nil || r.Balance.Sign() <= 0 {
			continue
		}
		holdings = append(holdings, entity.Holding{
			Symbol:       strings.ToUpper(r.Token.Symbol),
			Balance:      utils.FromSmallestUnit(r.Balance, r.Token.Decimals),
			TokenAddress: r.Token.Address,
		})
	}
	return holdings, nil
}

// discover returns contracts from transfer history that are not on the
// allow-list, first-seen first, capped at maxDiscovered. Errors degrade to none.
func (p *EthereumProvider) discover(ctx context.Context, address string) []entity.TokenInfo {
	seen, err := p.explorer.TokenTransfers(ctx, address)
	if err != nil {
		p.logger.Warn("Token discovery failed, probing allow-list only", "address", address, "error", err)
		return nil
	}

	byAddress := make(map[string]entity.TokenInfo, len(seen))
	addrs := make([]string, 0, len(seen))
	for _, t := range seen {
		key := strings.ToLower(t.Address)
		if _, ok := byAddress[key]; !ok {
			byAddress[key] = t
		}
		addrs = append(addrs, t.Address)
	}
	known := make([]string, len(p.knownTokens))
	for i, t := range p.knownTokens {
		known[i] = t.Address
	}

	fresh := utils.UniqueFold(addrs, known)
	if len(fresh) > p.maxDiscovered {
		p.logger.Debug("Discovery cap reached", "address", address, "found", len(fresh), "probed", p.maxDiscovered)
		fresh = fresh[:p.maxDiscovered]
	}

	out := make([]entity.TokenInfo, 0, len(fresh))
	for _, a := range fresh {
		out = append(out, byAddress[strings.ToLower(a)])
	}
	return out
}

// GetWalletData runs the native lookup and token discovery concurrently.
// Only a native failure fails the call.
func (p *EthereumProvider) GetWalletData(ctx context.Context, address string) (entity.WalletData, error) {
	if !p.ValidateAddress(address) {
		return entity.WalletData{}, apperr.InvalidInput("ethereum.wallet", apperr.ErrInvalidAddress)
	}

	var data entity.WalletData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		native, err := p.GetNativeBalance(gctx, address)
		if err != nil {
			return err
		}
		data.Native = native
		return nil
	})
	g.Go(func() error {
		tokens, err := p.GetTokenBalances(gctx, address)
		if err != nil {
			p.logger.Warn("Token balances unavailable", "address", address, "error", err)
			return nil
		}
		data.Tokens = tokens
		return nil
	})
	if err := g.Wait(); err != nil {
		return entity.WalletData{}, err
	}
	if data.Tokens == nil {
		data.Tokens = []entity.Holding{}
	}
	return data, nil
}
