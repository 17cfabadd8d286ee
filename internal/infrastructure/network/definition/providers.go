package networkdefinition

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/infrastructure/tokenloader"
)

// NetworkDefinitionProvider provides chain definitions with their token allow-lists.
type NetworkDefinitionProvider struct {
	logger  port.Logger
	defs    map[entity.Chain]entity.NetworkDefinition
	ordered []entity.Chain
}

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		Chain:            entity.ChainEthereum,
		Name:             "Ethereum Mainnet",
		NativeSymbol:     "ETH",
		Decimals:         18,
		PrimaryRPCURL:    "https://ethereum-rpc.publicnode.com",
		FallbackRPCURLs:  []string{"https://rpc.ankr.com/eth", "https://ethereum.publicnode.com"},
		BlockExplorerURL: "https://etherscan.io",
		KnownTokens:      DefaultEthereumTokens,
	}
	Bitcoin = entity.NetworkDefinition{
		Chain:            entity.ChainBitcoin,
		Name:             "Bitcoin",
		NativeSymbol:     "BTC",
		Decimals:         8,
		BlockExplorerURL: "https://www.blockchain.com/explorer",
	}
)

// DefaultEthereumTokens is the mainnet allow-list, highest value first.
var DefaultEthereumTokens = []entity.TokenInfo{ //nolint:gochecknoglobals
	{Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Name: "USD Coin", Symbol: "USDC", Decimals: 6},
	{Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Name: "Tether USD", Symbol: "USDT", Decimals: 6},
	{Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F", Name: "Dai Stablecoin", Symbol: "DAI", Decimals: 18},
	{Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", Name: "Wrapped Ether", Symbol: "WETH", Decimals: 18},
	{Address: "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", Name: "Wrapped BTC", Symbol: "WBTC", Decimals: 8},
	{Address: "0x514910771AF9Ca656af840dff83E8264EcF986CA", Name: "ChainLink Token", Symbol: "LINK", Decimals: 18},
	{Address: "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", Name: "Uniswap", Symbol: "UNI", Decimals: 18},
	{Address: "0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9", Name: "Aave Token", Symbol: "AAVE", Decimals: 18},
	{Address: "0x95aD61b0a150d79219dCF64E1E6Cc01f0B64C4cE", Name: "SHIBA INU", Symbol: "SHIB", Decimals: 18},
	{Address: "0x6982508145454Ce325dDbE47a25d4ec3d2311933", Name: "Pepe", Symbol: "PEPE", Decimals: 18},
	{Address: "0x7D1AfA7B718fb893dB30A3aBc0Cfc608AaCfeBB0", Name: "Matic Token", Symbol: "MATIC", Decimals: 18},
	{Address: "0xae7ab96520DE3A18E5e111B5EaAb095312D7fE84", Name: "Liquid staked Ether 2.0", Symbol: "STETH", Decimals: 18},
	{Address: "0x0bc529c00C6401aEF6D220BE8C6Ea1667F6Ad93e", Name: "yearn.finance", Symbol: "YFI", Decimals: 18},
	{Address: "0x4d224452801ACEd8B2F0aebE155379bb5D594381", Name: "ApeCoin", Symbol: "APE", Decimals: 18},
}

// NewNetworkDefinitionProvider creates a provider for all supported chains.
// A token list file, when given and present, replaces the Ethereum allow-list.
// The allow-list is capped at maxKnownTokens.
func NewNetworkDefinitionProvider(log port.Logger, tokenListFile string, maxKnownTokens int) (*NetworkDefinitionProvider, error) {
	p := &NetworkDefinitionProvider{
		logger:  log,
		defs:    make(map[entity.Chain]entity.NetworkDefinition),
		ordered: []entity.Chain{entity.ChainEthereum, entity.ChainBitcoin},
	}

	eth := Ethereum
	if tokenListFile != "" {
		loader := tokenloader.NewTokenLoader(tokenListFile, log.Info, log.Warn)
		tokens, err := loader.LoadTokens()
		switch {
		case errors.Is(err, fs.ErrNotExist):
			p.logger.Warn("Token list file not found, using built-in allow-list", "path", tokenListFile)
		case err != nil:
			return nil, fmt.Errorf("failed to load token list %s: %w", tokenListFile, err)
		case len(tokens) == 0:
			p.logger.Warn("Token list file is empty, using built-in allow-list", "path", tokenListFile)
		default:
			eth.KnownTokens = tokens
		}
	}
	if maxKnownTokens > 0 && len(eth.KnownTokens) > maxKnownTokens {
		p.logger.Warn(fmt.Sprintf("Allow-list has %d tokens, keeping the first %d", len(eth.KnownTokens), maxKnownTokens))
		eth.KnownTokens = eth.KnownTokens[:maxKnownTokens]
	}

	p.defs[entity.ChainEthereum] = eth
	p.defs[entity.ChainBitcoin] = Bitcoin

	p.logger.Info("NetworkDefinitionProvider initialized", "chains", len(p.defs), "ethereum_known_tokens", len(eth.KnownTokens))
	return p, nil
}

// GetAllNetworkDefinitions returns the definitions in a stable order.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	out := make([]entity.NetworkDefinition, 0, len(p.ordered))
	for _, c := range p.ordered {
		out = append(out, p.defs[c])
	}
	return out
}

// GetNetworkDefinition returns the definition for a chain.
func (p *NetworkDefinitionProvider) GetNetworkDefinition(chain entity.Chain) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.defs[entity.Chain(strings.ToLower(string(chain)))]
	return def, ok
}

// KnownTokens returns a copy of the chain's allow-list.
func (p *NetworkDefinitionProvider) KnownTokens(chain entity.Chain) []entity.TokenInfo {
	def, ok := p.GetNetworkDefinition(chain)
	if !ok {
		return nil
	}
	out := make([]entity.TokenInfo, len(def.KnownTokens))
	copy(out, def.KnownTokens)
	return out
}
