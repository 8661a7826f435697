package liquidity

import (
	"fmt"

	"github.com/krazyTry/saber-go/shared"
	solanago "github.com/krazyTry/saber-go/solana"
	"github.com/krazyTry/saber-go/stableswap"
)

func checkPoolTokenAmount(ex *stableswap.Exchange, poolTokenAmount solanago.TokenAmount) error {
	if poolTokenAmount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if err := ex.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExchange, err)
	}
	return nil
}

// WithdrawAll quotes burning poolTokenAmount for a proportional share of
// both reserves.
func WithdrawAll(
	oracle InvariantOracle,
	poolTokenAmount solanago.TokenAmount,
	ex *stableswap.Exchange,
	maxSlippage shared.Percent,
) (*BalancedWithdrawResult, error) {
	if err := checkPoolTokenAmount(ex, poolTokenAmount); err != nil {
		return nil, err
	}
	est, err := oracle.EstimateWithdrawAll(poolTokenAmount, ex.Reserves, ex.Fees, ex.LPTotalSupply)
	if err != nil {
		return nil, fmt.Errorf("estimate withdraw: %w", err)
	}

	out := &BalancedWithdrawResult{
		Estimates: est.WithdrawAmounts,
		Fees:      est.Fees,
	}
	for i := range out.Estimates {
		out.Minimums[i] = est.WithdrawAmounts[i].ReduceBy(maxSlippage)
		if gross := est.WithdrawAmountsBeforeFees[i]; !gross.IsZero() {
			p := est.Fees[i].DivideBy(gross)
			out.FeePercents[i] = &p
		}
	}
	return out, nil
}

// expectedWithdrawOne values poolTokenAmount at the virtual price, rounded
// down. It is the slippage baseline for either reserve.
func expectedWithdrawOne(tokens [stableswap.NCoins]solanago.Token, virtualPrice shared.Fraction, poolTokenAmount solanago.TokenAmount) [stableswap.NCoins]solanago.TokenAmount {
	value := virtualPrice.MulInt(shared.CloneInt(poolTokenAmount.Raw)).Floor()
	return [stableswap.NCoins]solanago.TokenAmount{
		solanago.NewTokenAmount(tokens[0], value),
		solanago.NewTokenAmount(tokens[1], value),
	}
}

// WithdrawOne quotes burning poolTokenAmount for withdrawToken only.
func WithdrawOne(
	oracle InvariantOracle,
	poolTokenAmount solanago.TokenAmount,
	ex *stableswap.Exchange,
	withdrawToken solanago.Token,
	virtualPrice shared.Fraction,
	maxSlippage shared.Percent,
) (*SingleTokenWithdrawResult, error) {
	if err := checkPoolTokenAmount(ex, poolTokenAmount); err != nil {
		return nil, err
	}
	idx, err := ex.ReserveIndex(withdrawToken)
	if err != nil {
		return nil, err
	}
	est, err := oracle.EstimateWithdrawOne(ex, poolTokenAmount, withdrawToken)
	if err != nil {
		return nil, fmt.Errorf("estimate withdraw one: %w", err)
	}

	out := &SingleTokenWithdrawResult{WithdrawToken: withdrawToken}

	estimate := est.WithdrawAmount
	out.Estimates[idx] = &estimate
	if totalFee := est.SwapFee.Add(est.WithdrawFee); !totalFee.IsZero() {
		out.Fees[idx] = &totalFee
	}

	expected := expectedWithdrawOne(ex.Tokens(), virtualPrice, poolTokenAmount)
	for i := range expected {
		out.Minimums[i] = expected[i].ReduceBy(maxSlippage)

		if e := out.Estimates[i]; e != nil && expected[i].Sign() > 0 {
			p := expected[i].Sub(*e).DivideBy(expected[i])
			out.Slippages[i] = &p
		}
		if f, e := out.Fees[i], out.Estimates[i]; f != nil && e != nil && !e.IsZero() {
			p := f.DivideBy(*e)
			out.FeePercents[i] = &p
		}
	}
	return out, nil
}
