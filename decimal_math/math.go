package decimal_math

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Pow10 returns 10^n exactly.
func Pow10(n int) decimal.Decimal {
	return decimal.New(1, int32(n))
}

// Pow10Int returns 10^n as an integer, n >= 0.
func Pow10Int(n uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// ToUI converts a raw on-chain amount into display units.
func ToUI(raw *big.Int, decimals uint8) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -int32(decimals))
}

// FromUI converts a display amount into raw units, rounding down.
func FromUI(amount decimal.Decimal, decimals uint8) *big.Int {
	return amount.Shift(int32(decimals)).Floor().BigInt()
}

// Rescale moves a raw amount between two decimal bases. Scaling down rounds
// toward zero.
func Rescale(raw *big.Int, from, to uint8) *big.Int {
	switch {
	case to > from:
		return new(big.Int).Mul(raw, Pow10Int(to-from))
	case to < from:
		return new(big.Int).Quo(raw, Pow10Int(from-to))
	default:
		return new(big.Int).Set(raw)
	}
}
