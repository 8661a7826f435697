package stableswap

import (
	"math/big"

	"github.com/gagliardetto/solana-go"
	solanago "github.com/krazyTry/saber-go/solana"
)

var (
	tokenA  = solanago.NewToken(solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"), 6, "USDC")
	tokenB  = solanago.NewToken(solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"), 6, "USDT")
	lpToken = solanago.NewToken(solana.MustPublicKeyFromBase58("2poo1w1DL6yd2WNTCnNTzDqkC6MBXq7axo77P16yrBuf"), 6, "USDC-USDT")
)

func newTestExchange(reserveA, reserveB, lpSupply int64, fees Fees) *Exchange {
	return &Exchange{
		SwapAccount: solana.MustPublicKeyFromBase58("YAkoNb6HKmSxQN9L8hiBE5tPJRsniSSMzND1boHmZxe"),
		ProgramID:   ProgramID,
		AmpFactor:   big.NewInt(DefaultAmpFactor),
		Reserves: [NCoins]Reserve{
			{Amount: solanago.NewTokenAmount(tokenA, big.NewInt(reserveA))},
			{Amount: solanago.NewTokenAmount(tokenB, big.NewInt(reserveB))},
		},
		LPTotalSupply: solanago.NewTokenAmount(lpToken, big.NewInt(lpSupply)),
		Fees:          fees,
	}
}
