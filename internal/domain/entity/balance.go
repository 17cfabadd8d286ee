package entity

import "github.com/shopspring/decimal"

// Holding is one balance line of an account. TokenAddress is empty for native
// assets and exchange balances.
type Holding struct {
	Symbol       string          `json:"symbol"`
	Balance      decimal.Decimal `json:"balance"`
	TokenAddress string          `json:"tokenAddress,omitempty"`
}

// WalletData is the full result of a wallet lookup.
type WalletData struct {
	Native Holding   `json:"native"`
	Tokens []Holding `json:"tokens"`
}

// Holdings flattens native and token balances, dropping a zero native balance.
func (w WalletData) Holdings() []Holding {
	out := make([]Holding, 0, len(w.Tokens)+1)
	if w.Native.Balance.IsPositive() {
		out = append(out, w.Native)
	}
	return append(out, w.Tokens...)
}
