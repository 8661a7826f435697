package liquidity

import (
	"math/big"
	"testing"

	"github.com/krazyTry/saber-go/shared"
	"github.com/krazyTry/saber-go/stableswap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithdrawAllZero(t *testing.T) {
	ex := newExchange(1_000_000, 1_000_000, 2_000_000, saberFees)
	res, err := WithdrawAll(stableswap.NewOracle(), lp(0), ex, shared.OnePercent)
	require.NoError(t, err)

	for i := 0; i < stableswap.NCoins; i++ {
		require.NotNil(t, res.Estimate(i))
		require.NotNil(t, res.Fee(i))
		assert.True(t, res.Estimate(i).IsZero())
		assert.True(t, res.Fee(i).IsZero())
		assert.True(t, res.Estimate(i).Token.Equals(ex.Reserves[i].Token()))
		assert.Nil(t, res.FeePercent(i))
	}
}

func TestWithdrawAllEntireSupply(t *testing.T) {
	ex := newExchange(1_000_000, 3_000_000, 2_000_000, saberFees)
	res, err := WithdrawAll(stableswap.NewOracle(), ex.LPTotalSupply, ex, shared.NewPercent(5, 1000))
	require.NoError(t, err)
	assert.Equal(t, WithdrawModeBalanced, res.Mode())

	for i, r := range ex.Reserves {
		total := new(big.Int).Add(res.Estimates[i].Raw, res.Fees[i].Raw)
		assert.True(t, shared.AbsDiff(total, r.Amount.Raw).Cmp(shared.One) <= 0, "side %d total=%s", i, total)

		assert.True(t, res.Minimums[i].Raw.Cmp(res.Estimates[i].Raw) <= 0)
		assert.True(t, res.Slippages[i].IsZero())

		require.NotNil(t, res.FeePercents[i])
		assert.True(t, res.FeePercents[i].Equal(saberFees.Withdraw), "fee percent %s", res.FeePercents[i])
	}
	assert.Equal(t, big.NewInt(990_025), res.Minimums[0].Raw)
}

func TestWithdrawAllErrors(t *testing.T) {
	ex := newExchange(1_000_000, 1_000_000, 2_000_000, saberFees)

	_, err := WithdrawAll(brokenOracle, lp(1_000), ex, shared.OnePercent)
	assert.ErrorIs(t, err, errOracle)

	_, err = WithdrawAll(stableswap.NewOracle(), lp(-1), ex, shared.OnePercent)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestWithdrawOne(t *testing.T) {
	oracle := stableswap.NewOracle()
	ex := newExchange(1_000_000, 1_000_000, 2_000_000, saberFees)
	virtualPrice, ok := oracle.VirtualPrice(ex)
	require.True(t, ok)

	res, err := WithdrawOne(oracle, lp(100_000), ex, tokenB, *virtualPrice, shared.NewPercent(1, 100))
	require.NoError(t, err)
	assert.Equal(t, WithdrawModeSingleToken, res.Mode())

	assert.Nil(t, res.Estimate(0))
	assert.Nil(t, res.Fee(0))
	assert.Nil(t, res.Slippage(0))
	assert.Nil(t, res.FeePercent(0))

	require.NotNil(t, res.Estimate(1))
	require.NotNil(t, res.Fee(1))
	assert.True(t, res.Estimate(1).Token.Equals(tokenB))
	assert.Equal(t, 1, res.Fee(1).Sign())

	for i := 0; i < stableswap.NCoins; i++ {
		assert.Equal(t, big.NewInt(99_000), res.Minimum(i).Raw, "side %d", i)
		assert.True(t, res.Minimum(i).Token.Equals(ex.Reserves[i].Token()))
	}

	require.NotNil(t, res.Slippage(1))
	want := shared.NewPercentFromBig(new(big.Int).Sub(big.NewInt(100_000), res.Estimate(1).Raw), big.NewInt(100_000))
	assert.True(t, res.Slippage(1).Equal(want))
	assert.Equal(t, 1, res.Slippage(1).Sign())

	require.NotNil(t, res.FeePercent(1))
	assert.True(t, res.FeePercent(1).Equal(res.Fee(1).DivideBy(*res.Estimate(1))))
}

func TestWithdrawOneWithoutFees(t *testing.T) {
	oracle := stableswap.NewOracle()
	ex := newExchange(1_000_000, 1_000_000, 2_000_000, stableswap.Fees{})
	virtualPrice, ok := oracle.VirtualPrice(ex)
	require.True(t, ok)

	res, err := WithdrawOne(oracle, lp(10_000), ex, tokenA, *virtualPrice, shared.OnePercent)
	require.NoError(t, err)
	require.NotNil(t, res.Estimate(0))
	assert.Nil(t, res.Fee(0))
	assert.Nil(t, res.FeePercent(0))
	assert.Nil(t, res.Estimate(1))
	assert.NotNil(t, res.Slippage(0))

	res, err = WithdrawOne(oracle, lp(0), ex, tokenA, *virtualPrice, shared.OnePercent)
	require.NoError(t, err)
	require.NotNil(t, res.Estimate(0))
	assert.True(t, res.Estimate(0).IsZero())
	assert.Nil(t, res.Slippage(0))
	assert.Nil(t, res.FeePercent(0))
	assert.True(t, res.Minimum(0).IsZero())
}

func TestWithdrawOneErrors(t *testing.T) {
	oracle := stableswap.NewOracle()
	ex := newExchange(1_000_000, 1_000_000, 2_000_000, saberFees)
	one := shared.NewFraction(1, 1)

	_, err := WithdrawOne(oracle, lp(1_000), ex, lpToken, one, shared.OnePercent)
	assert.ErrorIs(t, err, ErrUnknownToken)

	_, err = WithdrawOne(brokenOracle, lp(1_000), ex, tokenA, one, shared.OnePercent)
	assert.ErrorIs(t, err, errOracle)

	_, err = WithdrawOne(oracle, lp(3_000_000), ex, tokenA, one, shared.OnePercent)
	assert.ErrorIs(t, err, stableswap.ErrPoolTokenRange)
}
