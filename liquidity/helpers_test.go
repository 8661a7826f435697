package liquidity

import (
	"errors"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/krazyTry/saber-go/shared"
	solanago "github.com/krazyTry/saber-go/solana"
	"github.com/krazyTry/saber-go/stableswap"
)

var (
	tokenA  = solanago.NewToken(solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"), 6, "USDC")
	tokenB  = solanago.NewToken(solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"), 6, "USDT")
	lpToken = solanago.NewToken(solana.MustPublicKeyFromBase58("2poo1w1DL6yd2WNTCnNTzDqkC6MBXq7axo77P16yrBuf"), 6, "USDC-USDT")

	saberFees = stableswap.Fees{
		Trade:    shared.NewPercent(4, 10_000),
		Withdraw: shared.NewPercent(50, 10_000),
	}

	errOracle = errors.New("invariant did not converge")
)

func newExchange(reserveA, reserveB, lpSupply int64, fees stableswap.Fees) *stableswap.Exchange {
	return &stableswap.Exchange{
		SwapAccount: solana.MustPublicKeyFromBase58("YAkoNb6HKmSxQN9L8hiBE5tPJRsniSSMzND1boHmZxe"),
		ProgramID:   stableswap.ProgramID,
		AmpFactor:   big.NewInt(stableswap.DefaultAmpFactor),
		Reserves: [stableswap.NCoins]stableswap.Reserve{
			{Amount: solanago.NewTokenAmount(tokenA, big.NewInt(reserveA))},
			{Amount: solanago.NewTokenAmount(tokenB, big.NewInt(reserveB))},
		},
		LPTotalSupply: solanago.NewTokenAmount(lpToken, big.NewInt(lpSupply)),
		Fees:          fees,
	}
}

func lp(raw int64) solanago.TokenAmount {
	return solanago.NewTokenAmount(lpToken, big.NewInt(raw))
}

// failingOracle delegates VirtualPrice and fails every estimate.
type failingOracle struct {
	*stableswap.Oracle
}

var brokenOracle = failingOracle{Oracle: stableswap.NewOracle()}

func (failingOracle) EstimateMint(*stableswap.Exchange, *big.Int, *big.Int) (*stableswap.MintEstimate, error) {
	return nil, errOracle
}

func (failingOracle) EstimateWithdrawAll(solanago.TokenAmount, [stableswap.NCoins]stableswap.Reserve, stableswap.Fees, solanago.TokenAmount) (*stableswap.WithdrawAllEstimate, error) {
	return nil, errOracle
}

func (failingOracle) EstimateWithdrawOne(*stableswap.Exchange, solanago.TokenAmount, solanago.Token) (*stableswap.WithdrawOneEstimate, error) {
	return nil, errOracle
}

type staticSettings struct {
	maxSlippage shared.Percent
}

func (s staticSettings) MaxSlippage() shared.Percent {
	return s.maxSlippage
}
