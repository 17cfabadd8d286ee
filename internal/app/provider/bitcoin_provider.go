package provider

import (
	"context"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/pkg/utils"
	"wallet_aggregator/internal/pkg/validate"
)

const (
	btcNativeSymbol   = "BTC"
	btcNativeDecimals = 8
)

// BitcoinProvider implements port.WalletProvider on a UTXO-aggregate balance API.
// Bitcoin has no tokens.
type BitcoinProvider struct {
	client port.BitcoinBalanceClient
	logger port.Logger
}

func NewBitcoinProvider(client port.BitcoinBalanceClient, logger port.Logger) *BitcoinProvider {
	return &BitcoinProvider{client: client, logger: logger}
}

var _ port.WalletProvider = (*BitcoinProvider)(nil)

func (p *BitcoinProvider) Chain() entity.Chain { return entity.ChainBitcoin }

func (p *BitcoinProvider) ValidateAddress(address string) bool {
	return validate.BitcoinAddress(address)
}

func (p *BitcoinProvider) GetNativeBalance(ctx context.Context, address string) (entity.Holding, error) {
	if !p.ValidateAddress(address) {
		return entity.Holding{}, apperr.InvalidInput("bitcoin.native", apperr.ErrInvalidAddress)
	}
	sat, err := p.client.FinalBalance(ctx, address)
	if err != nil {
		return entity.Holding{}, err
	}
	return entity.Holding{
		Symbol:  btcNativeSymbol,
		Balance: utils.FromSmallestUnit(sat, btcNativeDecimals),
	}, nil
}

func (p *BitcoinProvider) GetTokenBalances(_ context.Context, address string) ([]entity.Holding, error) {
	if !p.ValidateAddress(address) {
		return nil, apperr.InvalidInput("bitcoin.tokens", apperr.ErrInvalidAddress)
	}
	return []entity.Holding{}, nil
}

func (p *BitcoinProvider) GetWalletData(ctx context.Context, address string) (entity.WalletData, error) {
	native, err := p.GetNativeBalance(ctx, address)
	if err != nil {
		return entity.WalletData{}, err
	}
	return entity.WalletData{Native: native, Tokens: []entity.Holding{}}, nil
}
