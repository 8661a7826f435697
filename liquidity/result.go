package liquidity

import (
	"github.com/krazyTry/saber-go/shared"
	solanago "github.com/krazyTry/saber-go/solana"
	"github.com/krazyTry/saber-go/stableswap"
)

type WithdrawMode uint8

const (
	WithdrawModeBalanced WithdrawMode = iota
	WithdrawModeSingleToken
)

func (m WithdrawMode) String() string {
	switch m {
	case WithdrawModeBalanced:
		return "balanced"
	case WithdrawModeSingleToken:
		return "single-token"
	default:
		return "unknown"
	}
}

// WithdrawResult is the per-side view shared by both withdraw modes. A nil
// return means the field does not apply to that side.
type WithdrawResult interface {
	Mode() WithdrawMode
	Estimate(i int) *solanago.TokenAmount
	Fee(i int) *solanago.TokenAmount
	FeePercent(i int) *shared.Percent
	Minimum(i int) *solanago.TokenAmount
	Slippage(i int) *shared.Percent
}

// BalancedWithdrawResult reports a proportional withdrawal. Every side is
// populated. Slippage is zero on both sides: the withdraw fee is the only
// deviation from the proportional share.
type BalancedWithdrawResult struct {
	Estimates   [stableswap.NCoins]solanago.TokenAmount
	Fees        [stableswap.NCoins]solanago.TokenAmount
	FeePercents [stableswap.NCoins]*shared.Percent
	Minimums    [stableswap.NCoins]solanago.TokenAmount
	Slippages   [stableswap.NCoins]shared.Percent
}

func (r *BalancedWithdrawResult) Mode() WithdrawMode { return WithdrawModeBalanced }

func (r *BalancedWithdrawResult) Estimate(i int) *solanago.TokenAmount { return &r.Estimates[i] }

func (r *BalancedWithdrawResult) Fee(i int) *solanago.TokenAmount { return &r.Fees[i] }

func (r *BalancedWithdrawResult) FeePercent(i int) *shared.Percent { return r.FeePercents[i] }

func (r *BalancedWithdrawResult) Minimum(i int) *solanago.TokenAmount { return &r.Minimums[i] }

func (r *BalancedWithdrawResult) Slippage(i int) *shared.Percent { return &r.Slippages[i] }

// SingleTokenWithdrawResult reports a withdrawal into one reserve token.
// Estimates and Fees are set only for that token. Minimums are set for both
// sides.
type SingleTokenWithdrawResult struct {
	WithdrawToken solanago.Token
	Estimates     [stableswap.NCoins]*solanago.TokenAmount
	Fees          [stableswap.NCoins]*solanago.TokenAmount
	FeePercents   [stableswap.NCoins]*shared.Percent
	Minimums      [stableswap.NCoins]solanago.TokenAmount
	Slippages     [stableswap.NCoins]*shared.Percent
}

func (r *SingleTokenWithdrawResult) Mode() WithdrawMode { return WithdrawModeSingleToken }

func (r *SingleTokenWithdrawResult) Estimate(i int) *solanago.TokenAmount { return r.Estimates[i] }

func (r *SingleTokenWithdrawResult) Fee(i int) *solanago.TokenAmount { return r.Fees[i] }

func (r *SingleTokenWithdrawResult) FeePercent(i int) *shared.Percent { return r.FeePercents[i] }

func (r *SingleTokenWithdrawResult) Minimum(i int) *solanago.TokenAmount { return &r.Minimums[i] }

func (r *SingleTokenWithdrawResult) Slippage(i int) *shared.Percent { return r.Slippages[i] }

var (
	_ WithdrawResult = (*BalancedWithdrawResult)(nil)
	_ WithdrawResult = (*SingleTokenWithdrawResult)(nil)
)
