package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CachedPrice is one symbol/currency quote with its fetch time.
type CachedPrice struct {
	Symbol    string
	Currency  string
	Price     decimal.Decimal
	CreatedAt time.Time
}

// Fresh reports whether the quote may still be served at now.
func (p CachedPrice) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(p.CreatedAt) <= ttl
}
