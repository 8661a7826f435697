package stableswap

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

const (
	// SwapInfoSize is the byte length of a SwapInfo account.
	SwapInfoSize = 395

	// MaxIterations bounds the Newton loops in ComputeD and ComputeY.
	MaxIterations = 256

	NCoins = 2

	DefaultAmpFactor = 100
)

var ProgramID = solana.MustPublicKeyFromBase58("SSwpkEEcbUqx4vtoEByFjSkhKdCT862DNVb52nZg1UZ")

var (
	ErrZeroReserve     = errors.New("stableswap: reserve is zero")
	ErrDDecreased      = errors.New("stableswap: new D cannot be less than previous D")
	ErrNotConverged    = errors.New("stableswap: invariant did not converge")
	ErrEmptyPool       = errors.New("stableswap: pool has no liquidity")
	ErrUnknownToken    = errors.New("stableswap: token is not a reserve of the pool")
	ErrPoolTokenRange  = errors.New("stableswap: pool token amount exceeds lp supply")
	ErrInvalidAccount  = errors.New("stableswap: invalid swap account")
	ErrInvalidSnapshot = errors.New("stableswap: exchange snapshot is incomplete")
)
