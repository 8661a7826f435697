package quarry

import (
	"errors"
	"math"
	"math/big"

	"github.com/gagliardetto/solana-go"
	solanago "github.com/krazyTry/saber-go/solana"
)

var (
	MineProgramID      = solana.MustPublicKeyFromBase58("QMNeHCGYnLVDn1icRAfQZpjPLBNkfGbSKRB83G5d8KB")
	MergeMineProgramID = solana.MustPublicKeyFromBase58("QMMD16kjauP5knBwxNUJRZ1Z5o3deBuFrqVjBVmmqto")

	SBRMint  = solana.MustPublicKeyFromBase58("Saber2gLauYim4Mvftnrasomsv6NvAuncvMEZwcLpD1")
	SBRToken = solanago.NewToken(SBRMint, 6, "SBR")
)

const (
	SecondsPerYear = 31_536_000

	QuarryAccount     = "Quarry"
	MinerAccount      = "Miner"
	MergeMinerAccount = "MergeMiner"
	RewarderAccount   = "Rewarder"
)

// PrecisionMultiplier scales rewards per token so sub-unit accruals survive
// integer division.
var PrecisionMultiplier = new(big.Int).SetUint64(math.MaxUint64)

var (
	ErrInvalidAccount  = errors.New("quarry: invalid account data")
	ErrRewardsOverpaid = errors.New("quarry: rewards per token paid exceeds current rewards per token")
)
