package liquidity

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/saber-go/shared"
	solanago "github.com/krazyTry/saber-go/solana"
	"github.com/krazyTry/saber-go/stableswap"
)

func depositAmounts(amountA, amountB *big.Int) (*big.Int, *big.Int, error) {
	a, b := shared.CloneInt(amountA), shared.CloneInt(amountB)
	if a.Sign() < 0 || b.Sign() < 0 {
		return nil, nil, ErrNegativeAmount
	}
	return a, b, nil
}

func validExchange(ex *stableswap.Exchange) error {
	if err := ex.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExchange, err)
	}
	if ex.LPTotalSupply.IsZero() {
		return fmt.Errorf("%w: lp supply is zero", ErrInvalidExchange)
	}
	return nil
}

// pricePerLPToken is (reserveA + reserveB) / lp supply in raw units.
func pricePerLPToken(ex *stableswap.Exchange) (shared.Fraction, error) {
	if err := validExchange(ex); err != nil {
		return shared.Fraction{}, err
	}
	reserves := ex.ReserveAmounts()
	sum := new(big.Int).Add(reserves[0], reserves[1])
	return shared.NewFractionFromBig(sum, ex.LPTotalSupply.Raw), nil
}

// PriceImpact is the relative change of the per-lp-token price caused by the
// deposit, measured against the mean of the before and after prices. It is
// always non-negative.
func PriceImpact(oracle InvariantOracle, ex *stableswap.Exchange, amountA, amountB *big.Int) (shared.Percent, error) {
	a, b, err := depositAmounts(amountA, amountB)
	if err != nil {
		return shared.ZeroPercent, err
	}
	if a.Sign() == 0 && b.Sign() == 0 {
		return shared.ZeroPercent, nil
	}

	p0, err := pricePerLPToken(ex)
	if err != nil {
		return shared.ZeroPercent, err
	}
	est, err := oracle.EstimateMint(ex, a, b)
	if err != nil {
		return shared.ZeroPercent, err
	}
	p1, err := pricePerLPToken(ex.WithDeposit(a, b, est.MintAmount.Raw))
	if err != nil {
		return shared.ZeroPercent, err
	}

	mean := p0.Add(p1).Div(shared.NewFraction(2, 1))
	if mean.IsZero() {
		return shared.ZeroPercent, fmt.Errorf("%w: reserves are empty", ErrInvalidExchange)
	}
	return shared.PercentFromFraction(p1.Sub(p0).Div(mean)).Abs(), nil
}

// DepositSlippage is 1 - V*M/S where V is the virtual price, M the minted lp
// amount and S the plain sum of the deposit. Negative values are a bonus for
// depositing towards balance.
func DepositSlippage(oracle InvariantOracle, ex *stableswap.Exchange, amountA, amountB *big.Int) (shared.Percent, error) {
	a, b, err := depositAmounts(amountA, amountB)
	if err != nil {
		return shared.ZeroPercent, err
	}
	sum := new(big.Int).Add(a, b)
	if sum.Sign() == 0 {
		return shared.ZeroPercent, nil
	}
	if err := ex.Validate(); err != nil {
		return shared.ZeroPercent, fmt.Errorf("%w: %v", ErrInvalidExchange, err)
	}
	if ex.IsPaused {
		return shared.ZeroPercent, nil
	}

	virtualPrice, ok := oracle.VirtualPrice(ex)
	if !ok {
		return shared.ZeroPercent, nil
	}
	est, err := oracle.EstimateMint(ex, a, b)
	if err != nil {
		return shared.ZeroPercent, err
	}

	value := virtualPrice.MulInt(est.MintAmount.Raw).Div(shared.FractionFromInt(sum))
	return shared.FullPercent.Sub(shared.PercentFromFraction(value)), nil
}

// MinimumPoolTokenAmount is the estimated mint reduced by maxSlippage. It
// guards the deposit transaction, so a pool without lp supply and oracle
// failures are returned as errors.
func MinimumPoolTokenAmount(oracle InvariantOracle, ex *stableswap.Exchange, amountA, amountB *big.Int, maxSlippage shared.Percent) (solanago.TokenAmount, error) {
	a, b, err := depositAmounts(amountA, amountB)
	if err != nil {
		return solanago.TokenAmount{}, err
	}
	if err := validExchange(ex); err != nil {
		return solanago.TokenAmount{}, err
	}
	est, err := oracle.EstimateMint(ex, a, b)
	if err != nil {
		return solanago.TokenAmount{}, fmt.Errorf("estimate mint: %w", err)
	}
	return est.MintAmount.ReduceBy(maxSlippage), nil
}
