package stableswap

import (
	"bytes"
	"math/big"
	"testing"
	"time"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	solanago "github.com/krazyTry/saber-go/solana"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSwapInfo() SwapInfo {
	return SwapInfo{
		IsInitialized:    true,
		Nonce:            254,
		InitialAmpFactor: 100,
		TargetAmpFactor:  200,
		StartRampTs:      1_000,
		StopRampTs:       2_000,
		TokenAccountA:    solana.NewWallet().PublicKey(),
		TokenAccountB:    solana.NewWallet().PublicKey(),
		PoolMint:         lpToken.Mint,
		MintA:            tokenA.Mint,
		MintB:            tokenB.Mint,
		AdminFeeAccountA: solana.NewWallet().PublicKey(),
		AdminFeeAccountB: solana.NewWallet().PublicKey(),
		Fees: FeesLayout{
			AdminTradeFeeNumerator:      0,
			AdminTradeFeeDenominator:    100,
			AdminWithdrawFeeNumerator:   0,
			AdminWithdrawFeeDenominator: 100,
			TradeFeeNumerator:           4,
			TradeFeeDenominator:         10_000,
			WithdrawFeeNumerator:        50,
			WithdrawFeeDenominator:      10_000,
		},
	}
}

func encodeSwapInfo(t *testing.T, info SwapInfo) []byte {
	buf := new(bytes.Buffer)
	require.NoError(t, binary.NewBinEncoder(buf).Encode(info))
	return buf.Bytes()
}

func TestSwapInfoLayout(t *testing.T) {
	info := testSwapInfo()
	data := encodeSwapInfo(t, info)
	require.Len(t, data, SwapInfoSize)

	got, err := new(SwapInfoLayout).Decode(data)
	require.NoError(t, err)
	assert.Equal(t, info, *got)

	fees := got.Fees.Fees()
	assert.Equal(t, "0.0400%", fees.Trade.String())
	assert.Equal(t, "0.5000%", fees.Withdraw.String())
	assert.True(t, fees.AdminTrade.IsZero())

	_, err = new(SwapInfoLayout).Decode(data[:100])
	assert.ErrorIs(t, err, ErrInvalidAccount)

	info.IsInitialized = false
	_, err = new(SwapInfoLayout).Decode(encodeSwapInfo(t, info))
	assert.ErrorIs(t, err, ErrInvalidAccount)
}

func TestNewExchange(t *testing.T) {
	info := testSwapInfo()
	mints := []*solanago.MintAccount{
		{Mint: token.Mint{Decimals: 6, IsInitialized: true}},
		{Mint: token.Mint{Decimals: 6, IsInitialized: true}},
		{Mint: token.Mint{Decimals: 6, Supply: 2_000_000, IsInitialized: true}},
	}
	accounts := []*solanago.Account{
		{Address: info.TokenAccountA, Mint: info.MintA, Amount: 1_000_000},
		{Address: info.TokenAccountB, Mint: info.MintB, Amount: 1_100_000},
	}
	clock := func() time.Time { return time.Unix(1_500, 0) }

	ex, err := NewExchange(solana.NewWallet().PublicKey(), ProgramID, &info, mints, accounts,
		WithClock(clock), WithSymbols(map[solana.PublicKey]string{tokenA.Mint: "USDC"}))
	require.NoError(t, err)
	require.NoError(t, ex.Validate())

	assert.Equal(t, big.NewInt(150), ex.AmpFactor)
	assert.Equal(t, "USDC", ex.Reserves[0].Token().Symbol)
	assert.Equal(t, big.NewInt(1_100_000), ex.Reserves[1].Amount.Raw)
	assert.Equal(t, big.NewInt(2_000_000), ex.LPTotalSupply.Raw)
	assert.True(t, ex.LPToken().Equals(lpToken))
	assert.Equal(t, info.AdminFeeAccountB, ex.Reserves[1].AdminFeeAccount)

	accounts[1].Mint = tokenA.Mint
	_, err = NewExchange(solana.NewWallet().PublicKey(), ProgramID, &info, mints, accounts)
	assert.ErrorIs(t, err, ErrInvalidAccount)

	_, err = NewExchange(solana.NewWallet().PublicKey(), ProgramID, &info, mints[:2], accounts)
	assert.ErrorIs(t, err, ErrInvalidAccount)
}
