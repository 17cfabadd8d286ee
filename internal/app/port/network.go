package port

//go:generate mockgen -source=network.go -destination=mocks/mock_network.go -package=mocks

import (
	"context"
	"math/big"

	"wallet_aggregator/internal/domain/entity"
)

// ExplorerClient defines a block-explorer style API (Etherscan and clones).
type ExplorerClient interface {
	// NativeBalance returns the account balance in wei.
	NativeBalance(ctx context.Context, address string) (*big.Int, error)

	// TokenBalance returns the raw token balance held by address on contract.
	TokenBalance(ctx context.Context, contract string, address string) (*big.Int, error)

	// TokenTransfers returns the contracts seen in the address's transfer
	// history, in first-seen order, without duplicates.
	TokenTransfers(ctx context.Context, address string) ([]entity.TokenInfo, error)
}

// TokenBalanceProber fetches balances for a known set of token contracts.
// A failure for one token is reported in its result item, not as the error.
type TokenBalanceProber interface {
	TokenBalances(ctx context.Context, address string, tokens []entity.TokenInfo) ([]entity.BalanceResultItem, error)
}

// BitcoinBalanceClient returns the confirmed UTXO aggregate of an address in satoshi.
type BitcoinBalanceClient interface {
	FinalBalance(ctx context.Context, address string) (*big.Int, error)
}
