package stableswap

import (
	"math/big"

	"github.com/krazyTry/saber-go/shared"
)

var (
	nCoins        = big.NewInt(NCoins)
	nCoinsPlusOne = big.NewInt(NCoins + 1)
)

// ComputeD solves the StableSwap invariant for D given both reserves.
// D is zero for an empty pool. A pool with exactly one empty side has no
// solution.
func ComputeD(ampFactor, amountA, amountB *big.Int) (*big.Int, error) {
	sum := new(big.Int).Add(amountA, amountB)
	if sum.Sign() == 0 {
		return big.NewInt(0), nil
	}
	if amountA.Sign() <= 0 || amountB.Sign() <= 0 {
		return nil, ErrZeroReserve
	}

	ann := new(big.Int).Mul(ampFactor, nCoins)
	annMinusOne := new(big.Int).Sub(ann, shared.One)
	annSum := new(big.Int).Mul(ann, sum)
	denA := new(big.Int).Mul(amountA, nCoins)
	denB := new(big.Int).Mul(amountB, nCoins)

	d := new(big.Int).Set(sum)
	for i := 0; i < MaxIterations; i++ {
		dPrev := d

		dP := new(big.Int).Mul(d, d)
		dP.Quo(dP, denA)
		dP.Mul(dP, d)
		dP.Quo(dP, denB)

		numerator := new(big.Int).Mul(dP, nCoins)
		numerator.Add(numerator, annSum)
		numerator.Mul(numerator, d)

		denominator := new(big.Int).Mul(d, annMinusOne)
		denominator.Add(denominator, new(big.Int).Mul(dP, nCoinsPlusOne))
		if denominator.Sign() <= 0 {
			return nil, ErrNotConverged
		}

		d = numerator.Quo(numerator, denominator)
		if shared.AbsDiff(d, dPrev).Cmp(shared.One) <= 0 {
			return d, nil
		}
	}
	return nil, ErrNotConverged
}

// ComputeY returns the balance of the other reserve that keeps the invariant
// at d when one reserve holds x.
func ComputeY(ampFactor, x, d *big.Int) (*big.Int, error) {
	if x.Sign() <= 0 {
		return nil, ErrZeroReserve
	}
	ann := new(big.Int).Mul(ampFactor, nCoins)

	// b = x + d/ann - d
	b := new(big.Int).Quo(d, ann)
	b.Add(b, x)
	b.Sub(b, d)

	// c = d^3 / (n^2 * x * ann)
	c := new(big.Int).Mul(d, d)
	c.Mul(c, d)
	cDen := new(big.Int).Mul(x, ann)
	cDen.Mul(cDen, nCoins)
	cDen.Mul(cDen, nCoins)
	c.Quo(c, cDen)

	y := new(big.Int).Set(d)
	for i := 0; i < MaxIterations; i++ {
		yPrev := y

		numerator := new(big.Int).Mul(y, y)
		numerator.Add(numerator, c)
		denominator := new(big.Int).Mul(y, nCoins)
		denominator.Add(denominator, b)
		if denominator.Sign() <= 0 {
			return nil, ErrNotConverged
		}

		y = numerator.Quo(numerator, denominator)
		if shared.AbsDiff(y, yPrev).Cmp(shared.One) <= 0 {
			return y, nil
		}
	}
	return nil, ErrNotConverged
}

// NormalizedTradeFee is the trade fee charged on an imbalance of amount,
// scaled by n/(4(n-1)) for an n-coin pool.
func NormalizedTradeFee(fees Fees, amount *big.Int) shared.Fraction {
	return fees.Trade.Fraction().
		Mul(shared.NewFraction(NCoins, 4*(NCoins-1))).
		MulInt(amount)
}
