package stableswap

import (
	"fmt"
	"math/big"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/krazyTry/saber-go/shared"
)

// FeesLayout stores each rate as numerator/denominator.
type FeesLayout struct {
	AdminTradeFeeNumerator      uint64
	AdminTradeFeeDenominator    uint64
	AdminWithdrawFeeNumerator   uint64
	AdminWithdrawFeeDenominator uint64
	TradeFeeNumerator           uint64
	TradeFeeDenominator         uint64
	WithdrawFeeNumerator        uint64
	WithdrawFeeDenominator      uint64
}

// SwapInfo is the on-chain state of a swap account.
type SwapInfo struct {
	IsInitialized       bool
	IsPaused            bool
	Nonce               uint8
	InitialAmpFactor    uint64
	TargetAmpFactor     uint64
	StartRampTs         int64
	StopRampTs          int64
	FutureAdminDeadline int64
	FutureAdminAccount  solana.PublicKey
	AdminAccount        solana.PublicKey
	TokenAccountA       solana.PublicKey
	TokenAccountB       solana.PublicKey
	PoolMint            solana.PublicKey
	MintA               solana.PublicKey
	MintB               solana.PublicKey
	AdminFeeAccountA    solana.PublicKey
	AdminFeeAccountB    solana.PublicKey
	Fees                FeesLayout
}

type SwapInfoLayout struct {
}

func (l *SwapInfoLayout) Decode(data []byte) (*SwapInfo, error) {
	if len(data) < SwapInfoSize {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidAccount, len(data), SwapInfoSize)
	}
	info := &SwapInfo{}
	if err := binary.NewBinDecoder(data).Decode(info); err != nil {
		return nil, err
	}
	if !info.IsInitialized {
		return nil, fmt.Errorf("%w: not initialized", ErrInvalidAccount)
	}
	return info, nil
}

func (i *SwapInfo) Ramp() AmpRamp {
	return AmpRamp{
		InitialAmp:  i.InitialAmpFactor,
		TargetAmp:   i.TargetAmpFactor,
		StartRampTs: i.StartRampTs,
		StopRampTs:  i.StopRampTs,
	}
}

func feePercent(num, den uint64) shared.Percent {
	if den == 0 {
		return shared.ZeroPercent
	}
	return shared.NewPercentFromBig(new(big.Int).SetUint64(num), new(big.Int).SetUint64(den))
}

func (f FeesLayout) Fees() Fees {
	return Fees{
		Trade:         feePercent(f.TradeFeeNumerator, f.TradeFeeDenominator),
		Withdraw:      feePercent(f.WithdrawFeeNumerator, f.WithdrawFeeDenominator),
		AdminTrade:    feePercent(f.AdminTradeFeeNumerator, f.AdminTradeFeeDenominator),
		AdminWithdraw: feePercent(f.AdminWithdrawFeeNumerator, f.AdminWithdrawFeeDenominator),
	}
}
