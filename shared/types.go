package shared

import "math/big"

type Rounding uint8

const (
	RoundingUp   Rounding = 0
	RoundingDown Rounding = 1
)

const (
	BasisPointMax = 10_000

	// NCoins is the number of reserves in a swap.
	NCoins = 2
)

var (
	Zero = big.NewInt(0)
	One  = big.NewInt(1)
	Two  = big.NewInt(2)
)

// MulDiv computes x*y/denominator with the requested rounding. A zero
// denominator yields zero.
func MulDiv(x, y, denominator *big.Int, rounding Rounding) *big.Int {
	if denominator.Sign() == 0 {
		return big.NewInt(0)
	}
	mul := new(big.Int).Mul(x, y)
	div, mod := new(big.Int).QuoRem(mul, denominator, new(big.Int))
	if rounding == RoundingUp && mod.Sign() != 0 {
		return div.Add(div, big.NewInt(1))
	}
	return div
}

// AbsDiff returns |a - b|.
func AbsDiff(a, b *big.Int) *big.Int {
	return new(big.Int).Abs(new(big.Int).Sub(a, b))
}

// CloneInt copies x, mapping nil to zero.
func CloneInt(x *big.Int) *big.Int {
	if x == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(x)
}
