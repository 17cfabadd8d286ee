package entity

import "github.com/shopspring/decimal"

// AccountValuation is the value of one account in the base currency.
// Share is a percentage of the portfolio total.
type AccountValuation struct {
	AccountID string          `json:"accountId"`
	Name      string          `json:"name"`
	Kind      AccountKind     `json:"kind"`
	Value     decimal.Decimal `json:"value"`
	Share     decimal.Decimal `json:"share"`
}

// Portfolio is the valuation of a set of accounts.
type Portfolio struct {
	BaseCurrency string             `json:"baseCurrency"`
	Total        decimal.Decimal    `json:"total"`
	Accounts     []AccountValuation `json:"accounts"`
}
