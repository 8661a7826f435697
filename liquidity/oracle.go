package liquidity

import (
	"errors"
	"math/big"

	"github.com/krazyTry/saber-go/shared"
	solanago "github.com/krazyTry/saber-go/solana"
	"github.com/krazyTry/saber-go/stableswap"
)

var (
	ErrInvalidExchange = errors.New("liquidity: exchange is not in a valid two-asset state")
	ErrNegativeAmount  = errors.New("liquidity: amount must be non-negative")
	ErrUnknownToken    = stableswap.ErrUnknownToken
)

// InvariantOracle supplies the pool invariant math. Implementations must be
// pure: no I/O, same output for the same snapshot.
type InvariantOracle interface {
	EstimateMint(ex *stableswap.Exchange, amountA, amountB *big.Int) (*stableswap.MintEstimate, error)
	VirtualPrice(ex *stableswap.Exchange) (*shared.Fraction, bool)
	EstimateWithdrawAll(
		poolTokenAmount solanago.TokenAmount,
		reserves [stableswap.NCoins]stableswap.Reserve,
		fees stableswap.Fees,
		lpSupply solanago.TokenAmount,
	) (*stableswap.WithdrawAllEstimate, error)
	EstimateWithdrawOne(ex *stableswap.Exchange, poolTokenAmount solanago.TokenAmount, withdrawToken solanago.Token) (*stableswap.WithdrawOneEstimate, error)
}

var _ InvariantOracle = (*stableswap.Oracle)(nil)
