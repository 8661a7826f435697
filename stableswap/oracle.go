package stableswap

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/saber-go/shared"
	solanago "github.com/krazyTry/saber-go/solana"
)

type MintEstimate struct {
	MintAmountBeforeFees solanago.TokenAmount
	MintAmount           solanago.TokenAmount
	Fees                 solanago.TokenAmount
}

type WithdrawAllEstimate struct {
	WithdrawAmounts           [NCoins]solanago.TokenAmount
	WithdrawAmountsBeforeFees [NCoins]solanago.TokenAmount
	Fees                      [NCoins]solanago.TokenAmount
}

type WithdrawOneEstimate struct {
	WithdrawAmount           solanago.TokenAmount
	WithdrawAmountBeforeFees solanago.TokenAmount
	SwapFee                  solanago.TokenAmount
	WithdrawFee              solanago.TokenAmount
	LPSwapFee                solanago.TokenAmount
	LPWithdrawFee            solanago.TokenAmount
	AdminSwapFee             solanago.TokenAmount
	AdminWithdrawFee         solanago.TokenAmount
}

// Oracle evaluates the StableSwap invariant over in-memory snapshots. It
// holds no state and is safe for concurrent use.
type Oracle struct{}

func NewOracle() *Oracle {
	return &Oracle{}
}

// VirtualPrice is D / lp supply. ok is false when the supply is zero or the
// invariant cannot be solved for the current reserves.
func (o *Oracle) VirtualPrice(ex *Exchange) (*shared.Fraction, bool) {
	if ex == nil || ex.LPTotalSupply.IsZero() || ex.AmpFactor == nil {
		return nil, false
	}
	reserves := ex.ReserveAmounts()
	d, err := ComputeD(ex.AmpFactor, reserves[0], reserves[1])
	if err != nil {
		return nil, false
	}
	price := shared.NewFractionFromBig(d, ex.LPTotalSupply.Raw)
	return &price, true
}

func checkSnapshot(ex *Exchange) error {
	if err := ex.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return nil
}

// EstimateMint returns the lp tokens minted for depositing (amountA, amountB).
// A pool without lp supply has no mint ratio and fails with ErrEmptyPool.
func (o *Oracle) EstimateMint(ex *Exchange, amountA, amountB *big.Int) (*MintEstimate, error) {
	if err := checkSnapshot(ex); err != nil {
		return nil, err
	}
	amountA, amountB = shared.CloneInt(amountA), shared.CloneInt(amountB)
	lpToken := ex.LPToken()
	if amountA.Sign() == 0 && amountB.Sign() == 0 {
		zero := solanago.NewTokenAmount(lpToken, nil)
		return &MintEstimate{MintAmountBeforeFees: zero, MintAmount: zero, Fees: zero}, nil
	}
	if ex.LPTotalSupply.IsZero() {
		return nil, ErrEmptyPool
	}

	amp := ex.AmpFactor
	oldBalances := ex.ReserveAmounts()
	newBalances := [NCoins]*big.Int{
		new(big.Int).Add(oldBalances[0], amountA),
		new(big.Int).Add(oldBalances[1], amountB),
	}

	d0, err := ComputeD(amp, oldBalances[0], oldBalances[1])
	if err != nil {
		return nil, fmt.Errorf("compute d0: %w", err)
	}
	if d0.Sign() == 0 {
		return nil, ErrEmptyPool
	}
	d1, err := ComputeD(amp, newBalances[0], newBalances[1])
	if err != nil {
		return nil, fmt.Errorf("compute d1: %w", err)
	}
	if d1.Cmp(d0) < 0 {
		return nil, ErrDDecreased
	}

	var adjusted [NCoins]*big.Int
	growth := shared.NewFractionFromBig(d1, d0)
	for i := range newBalances {
		ideal := growth.MulInt(oldBalances[i])
		diff := ideal.Sub(shared.FractionFromInt(newBalances[i])).Abs().Floor()
		fee := NormalizedTradeFee(ex.Fees, diff).Floor()
		adjusted[i] = new(big.Int).Sub(newBalances[i], fee)
	}

	d2, err := ComputeD(amp, adjusted[0], adjusted[1])
	if err != nil {
		return nil, fmt.Errorf("compute d2: %w", err)
	}

	lpSupply := shared.CloneInt(ex.LPTotalSupply.Raw)
	mint := shared.MulDiv(lpSupply, new(big.Int).Sub(d2, d0), d0, shared.RoundingDown)
	beforeFees := shared.MulDiv(lpSupply, new(big.Int).Sub(d1, d0), d0, shared.RoundingDown)

	return &MintEstimate{
		MintAmountBeforeFees: solanago.NewTokenAmount(lpToken, beforeFees),
		MintAmount:           solanago.NewTokenAmount(lpToken, mint),
		Fees:                 solanago.NewTokenAmount(lpToken, new(big.Int).Sub(beforeFees, mint)),
	}, nil
}

// EstimateWithdrawAll splits poolTokenAmount proportionally across the
// reserves and charges the withdraw fee on each side.
func (o *Oracle) EstimateWithdrawAll(
	poolTokenAmount solanago.TokenAmount,
	reserves [NCoins]Reserve,
	fees Fees,
	lpSupply solanago.TokenAmount,
) (*WithdrawAllEstimate, error) {
	out := &WithdrawAllEstimate{}
	if lpSupply.IsZero() {
		for i, r := range reserves {
			zero := solanago.NewTokenAmount(r.Token(), nil)
			out.WithdrawAmounts[i], out.WithdrawAmountsBeforeFees[i], out.Fees[i] = zero, zero, zero
		}
		return out, nil
	}
	if poolTokenAmount.Sign() < 0 {
		return nil, fmt.Errorf("negative pool token amount %s", poolTokenAmount.Raw)
	}

	share := shared.NewFractionFromBig(shared.CloneInt(poolTokenAmount.Raw), lpSupply.Raw)
	for i, r := range reserves {
		base := share.MulInt(shared.CloneInt(r.Amount.Raw))
		fee := base.Mul(fees.Withdraw.Fraction())
		out.WithdrawAmounts[i] = solanago.NewTokenAmount(r.Token(), base.Sub(fee).Floor())
		out.WithdrawAmountsBeforeFees[i] = solanago.NewTokenAmount(r.Token(), base.Floor())
		out.Fees[i] = solanago.NewTokenAmount(r.Token(), fee.Floor())
	}
	return out, nil
}

// EstimateWithdrawOne returns the amount of withdrawToken received for
// burning poolTokenAmount, with the imbalance swap fee and the withdraw fee
// broken out.
func (o *Oracle) EstimateWithdrawOne(ex *Exchange, poolTokenAmount solanago.TokenAmount, withdrawToken solanago.Token) (*WithdrawOneEstimate, error) {
	if err := checkSnapshot(ex); err != nil {
		return nil, err
	}
	idx, err := ex.ReserveIndex(withdrawToken)
	if err != nil {
		return nil, err
	}
	zero := solanago.NewTokenAmount(withdrawToken, nil)
	if poolTokenAmount.IsZero() {
		return &WithdrawOneEstimate{
			WithdrawAmount:           zero,
			WithdrawAmountBeforeFees: zero,
			SwapFee:                  zero,
			WithdrawFee:              zero,
			LPSwapFee:                zero,
			LPWithdrawFee:            zero,
			AdminSwapFee:             zero,
			AdminWithdrawFee:         zero,
		}, nil
	}
	lpSupply := ex.LPTotalSupply.Raw
	if ex.LPTotalSupply.IsZero() {
		return nil, ErrEmptyPool
	}
	if poolTokenAmount.Sign() < 0 || poolTokenAmount.Raw.Cmp(lpSupply) > 0 {
		return nil, fmt.Errorf("%w: %s > %s", ErrPoolTokenRange, poolTokenAmount.Raw, lpSupply)
	}

	amp := ex.AmpFactor
	reserves := ex.ReserveAmounts()
	baseReserves, quoteReserves := reserves[idx], reserves[1-idx]

	d0, err := ComputeD(amp, baseReserves, quoteReserves)
	if err != nil {
		return nil, fmt.Errorf("compute d0: %w", err)
	}
	d1 := new(big.Int).Sub(d0, shared.MulDiv(poolTokenAmount.Raw, d0, lpSupply, shared.RoundingDown))

	newY, err := ComputeY(amp, quoteReserves, d1)
	if err != nil {
		return nil, fmt.Errorf("compute y: %w", err)
	}

	expectedBase := shared.MulDiv(baseReserves, d1, d0, shared.RoundingDown)
	expectedBase.Sub(expectedBase, newY)
	expectedQuote := new(big.Int).Sub(quoteReserves, shared.MulDiv(quoteReserves, d1, d0, shared.RoundingDown))

	newBase := shared.FractionFromInt(baseReserves).Sub(NormalizedTradeFee(ex.Fees, expectedBase))
	newQuote := shared.FractionFromInt(quoteReserves).Sub(NormalizedTradeFee(ex.Fees, expectedQuote))

	y, err := ComputeY(amp, newQuote.Floor(), d1)
	if err != nil {
		return nil, fmt.Errorf("compute y after fees: %w", err)
	}
	dy := newBase.Sub(shared.FractionFromInt(y))
	dy0 := new(big.Int).Sub(baseReserves, newY)

	withdrawFee := dy.Mul(ex.Fees.Withdraw.Fraction())
	swapFee := shared.FractionFromInt(dy0).Sub(dy)
	withdrawAmount := dy.Sub(withdrawFee)

	adminSwapFee := swapFee.Mul(ex.Fees.AdminTrade.Fraction())
	adminWithdrawFee := withdrawFee.Mul(ex.Fees.AdminWithdraw.Fraction())

	amount := func(f shared.Fraction) solanago.TokenAmount {
		return solanago.NewTokenAmount(withdrawToken, f.Floor())
	}
	return &WithdrawOneEstimate{
		WithdrawAmount:           amount(withdrawAmount),
		WithdrawAmountBeforeFees: solanago.NewTokenAmount(withdrawToken, dy0),
		SwapFee:                  amount(swapFee),
		WithdrawFee:              amount(withdrawFee),
		LPSwapFee:                amount(swapFee.Sub(adminSwapFee)),
		LPWithdrawFee:            amount(withdrawFee.Sub(adminWithdrawFee)),
		AdminSwapFee:             amount(adminSwapFee),
		AdminWithdrawFee:         amount(adminWithdrawFee),
	}, nil
}
