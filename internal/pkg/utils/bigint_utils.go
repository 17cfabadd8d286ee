package utils

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// FromSmallestUnit converts an integer amount of smallest units (wei, satoshi)
// into a decimal using the exact divisor 10^decimals.
// Example: amount=1234500000000000000, decimals=18 => 1.2345
func FromSmallestUnit(amount *big.Int, decimals uint8) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -int32(decimals))
}

// FormatBigInt converts a smallest-unit amount to a trimmed decimal string.
func FormatBigInt(amount *big.Int, decimals uint8) string {
	return FromSmallestUnit(amount, decimals).String()
}
