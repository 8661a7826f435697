package stableswap

import (
	"math/big"
	"testing"

	"github.com/krazyTry/saber-go/shared"
	solanago "github.com/krazyTry/saber-go/solana"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var saberFees = Fees{
	Trade:         shared.NewPercent(4, 10_000),
	Withdraw:      shared.NewPercent(50, 10_000),
	AdminTrade:    shared.NewPercent(1, 2),
	AdminWithdraw: shared.NewPercent(1, 2),
}

func TestVirtualPrice(t *testing.T) {
	o := NewOracle()

	v, ok := o.VirtualPrice(newTestExchange(1_000_000, 1_000_000, 2_000_000, Fees{}))
	require.True(t, ok)
	assert.True(t, v.Equal(shared.NewFraction(1, 1)), "v=%s", v)

	v, ok = o.VirtualPrice(newTestExchange(1_000_000, 1_000_000, 1_000_000, Fees{}))
	require.True(t, ok)
	assert.True(t, v.Equal(shared.NewFraction(2, 1)), "v=%s", v)

	_, ok = o.VirtualPrice(newTestExchange(1_000_000, 1_000_000, 0, Fees{}))
	assert.False(t, ok)

	_, ok = o.VirtualPrice(newTestExchange(1_000_000, 0, 1_000_000, Fees{}))
	assert.False(t, ok)
}

func TestEstimateMint(t *testing.T) {
	o := NewOracle()
	ex := newTestExchange(1_000_000, 1_000_000, 2_000_000, Fees{})

	t.Run("zero", func(t *testing.T) {
		est, err := o.EstimateMint(ex, big.NewInt(0), big.NewInt(0))
		require.NoError(t, err)
		assert.True(t, est.MintAmount.IsZero())
		assert.True(t, est.Fees.IsZero())
		assert.True(t, est.MintAmount.Token.Equals(lpToken))
	})

	t.Run("balanced", func(t *testing.T) {
		est, err := o.EstimateMint(ex, big.NewInt(50_000), big.NewInt(50_000))
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(100_000), est.MintAmount.Raw)
		assert.Equal(t, big.NewInt(100_000), est.MintAmountBeforeFees.Raw)
		assert.True(t, est.Fees.IsZero())
	})

	t.Run("single sided", func(t *testing.T) {
		est, err := o.EstimateMint(ex, big.NewInt(100_000), big.NewInt(0))
		require.NoError(t, err)
		assert.True(t, est.MintAmount.Raw.Cmp(big.NewInt(100_000)) < 0, "mint=%s", est.MintAmount.Raw)
		assert.True(t, est.MintAmount.Raw.Cmp(big.NewInt(99_000)) > 0, "mint=%s", est.MintAmount.Raw)
	})

	t.Run("imbalance fee", func(t *testing.T) {
		est, err := o.EstimateMint(newTestExchange(1_000_000, 1_000_000, 2_000_000, saberFees), big.NewInt(100_000), big.NewInt(0))
		require.NoError(t, err)
		assert.Equal(t, 1, est.Fees.Sign())
		assert.True(t, est.MintAmount.Raw.Cmp(est.MintAmountBeforeFees.Raw) < 0)
		assert.Equal(t, est.MintAmountBeforeFees.Raw, new(big.Int).Add(est.MintAmount.Raw, est.Fees.Raw))
	})

	t.Run("empty pool", func(t *testing.T) {
		_, err := o.EstimateMint(newTestExchange(0, 0, 0, Fees{}), big.NewInt(10), big.NewInt(10))
		assert.ErrorIs(t, err, ErrEmptyPool)
	})

	t.Run("no lp supply", func(t *testing.T) {
		_, err := o.EstimateMint(newTestExchange(1_000_000, 1_000_000, 0, Fees{}), big.NewInt(100_000), big.NewInt(0))
		assert.ErrorIs(t, err, ErrEmptyPool)
	})

	t.Run("incomplete snapshot", func(t *testing.T) {
		_, err := o.EstimateMint(nil, big.NewInt(10), big.NewInt(10))
		assert.ErrorIs(t, err, ErrInvalidSnapshot)

		noAmp := newTestExchange(1_000_000, 1_000_000, 2_000_000, Fees{})
		noAmp.AmpFactor = nil
		_, err = o.EstimateMint(noAmp, big.NewInt(10), big.NewInt(10))
		assert.ErrorIs(t, err, ErrInvalidSnapshot)
	})
}

func TestEstimateWithdrawAll(t *testing.T) {
	o := NewOracle()
	ex := newTestExchange(1_000_000, 3_000_000, 2_000_000, saberFees)

	est, err := o.EstimateWithdrawAll(ex.LPTotalSupply, ex.Reserves, ex.Fees, ex.LPTotalSupply)
	require.NoError(t, err)
	for i, r := range ex.Reserves {
		assert.Equal(t, r.Amount.Raw, est.WithdrawAmountsBeforeFees[i].Raw)
		total := new(big.Int).Add(est.WithdrawAmounts[i].Raw, est.Fees[i].Raw)
		assert.True(t, shared.AbsDiff(total, r.Amount.Raw).Cmp(shared.One) <= 0, "side %d total=%s", i, total)
		assert.True(t, est.WithdrawAmounts[i].Token.Equals(r.Token()))
	}
	assert.Equal(t, big.NewInt(5_000), est.Fees[0].Raw)
	assert.Equal(t, big.NewInt(995_000), est.WithdrawAmounts[0].Raw)

	half := solanago.NewTokenAmount(lpToken, big.NewInt(1_000_000))
	est, err = o.EstimateWithdrawAll(half, ex.Reserves, ex.Fees, ex.LPTotalSupply)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_500_000), est.WithdrawAmountsBeforeFees[1].Raw)
	assert.Equal(t, big.NewInt(7_500), est.Fees[1].Raw)

	empty := newTestExchange(0, 0, 0, saberFees)
	est, err = o.EstimateWithdrawAll(half, empty.Reserves, empty.Fees, empty.LPTotalSupply)
	require.NoError(t, err)
	assert.True(t, est.WithdrawAmounts[0].IsZero())
	assert.True(t, est.Fees[1].IsZero())
}

func TestEstimateWithdrawOne(t *testing.T) {
	o := NewOracle()
	pool := solanago.NewTokenAmount(lpToken, big.NewInt(10_000))

	t.Run("no fees", func(t *testing.T) {
		ex := newTestExchange(1_000_000, 1_000_000, 2_000_000, Fees{})
		est, err := o.EstimateWithdrawOne(ex, pool, tokenA)
		require.NoError(t, err)
		assert.True(t, est.WithdrawAmount.Token.Equals(tokenA))
		assert.True(t, est.WithdrawAmount.Raw.Cmp(big.NewInt(9_900)) > 0, "amount=%s", est.WithdrawAmount.Raw)
		assert.True(t, est.WithdrawAmount.Raw.Cmp(big.NewInt(10_001)) <= 0, "amount=%s", est.WithdrawAmount.Raw)
		assert.True(t, est.SwapFee.IsZero())
		assert.True(t, est.WithdrawFee.IsZero())
	})

	t.Run("fees", func(t *testing.T) {
		ex := newTestExchange(1_000_000, 1_000_000, 2_000_000, saberFees)
		est, err := o.EstimateWithdrawOne(ex, solanago.NewTokenAmount(lpToken, big.NewInt(100_000)), tokenB)
		require.NoError(t, err)
		assert.True(t, est.WithdrawAmount.Token.Equals(tokenB))
		assert.Equal(t, 1, est.SwapFee.Sign())
		assert.Equal(t, 1, est.WithdrawFee.Sign())

		split := new(big.Int).Add(est.AdminSwapFee.Raw, est.LPSwapFee.Raw)
		assert.True(t, shared.AbsDiff(split, est.SwapFee.Raw).Cmp(shared.One) <= 0)
		split = new(big.Int).Add(est.AdminWithdrawFee.Raw, est.LPWithdrawFee.Raw)
		assert.True(t, shared.AbsDiff(split, est.WithdrawFee.Raw).Cmp(shared.One) <= 0)

		gross := new(big.Int).Add(est.WithdrawAmount.Raw, est.SwapFee.Raw)
		gross.Add(gross, est.WithdrawFee.Raw)
		assert.True(t, shared.AbsDiff(gross, est.WithdrawAmountBeforeFees.Raw).Cmp(big.NewInt(2)) <= 0)
	})

	t.Run("zero amount", func(t *testing.T) {
		ex := newTestExchange(1_000_000, 1_000_000, 2_000_000, saberFees)
		est, err := o.EstimateWithdrawOne(ex, solanago.NewTokenAmount(lpToken, nil), tokenA)
		require.NoError(t, err)
		assert.True(t, est.WithdrawAmount.IsZero())
		assert.True(t, est.SwapFee.IsZero())
	})

	t.Run("errors", func(t *testing.T) {
		ex := newTestExchange(1_000_000, 1_000_000, 2_000_000, saberFees)
		_, err := o.EstimateWithdrawOne(ex, pool, lpToken)
		assert.ErrorIs(t, err, ErrUnknownToken)

		_, err = o.EstimateWithdrawOne(ex, solanago.NewTokenAmount(lpToken, big.NewInt(2_000_001)), tokenA)
		assert.ErrorIs(t, err, ErrPoolTokenRange)

		_, err = o.EstimateWithdrawOne(newTestExchange(0, 0, 0, saberFees), pool, tokenA)
		assert.ErrorIs(t, err, ErrEmptyPool)

		_, err = o.EstimateWithdrawOne(nil, pool, tokenA)
		assert.ErrorIs(t, err, ErrInvalidSnapshot)

		noAmp := newTestExchange(1_000_000, 1_000_000, 2_000_000, saberFees)
		noAmp.AmpFactor = nil
		_, err = o.EstimateWithdrawOne(noAmp, pool, tokenA)
		assert.ErrorIs(t, err, ErrInvalidSnapshot)
	})
}
