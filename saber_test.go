package saber

import (
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/krazyTry/saber-go/config"
	"github.com/krazyTry/saber-go/liquidity"
	"github.com/krazyTry/saber-go/shared"
	solanago "github.com/krazyTry/saber-go/solana"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() config.Settings {
	return config.Settings{}.WithMaxSlippage(shared.NewPercent(5, 1000))
}

func TestSnapshotQuotes(t *testing.T) {
	data, err := os.ReadFile("testdata/usdc_usdt.json")
	require.NoError(t, err)
	ex, err := ParseExchange(data)
	require.NoError(t, err)

	calc := NewCalculator(testSettings())
	tokens := ex.Tokens()

	a, err := solanago.ParseTokenAmount(tokens[0], "500")
	require.NoError(t, err)
	b, err := solanago.ParseTokenAmount(tokens[1], "500")
	require.NoError(t, err)

	q, err := calc.Quote(ex, a, b)
	require.NoError(t, err)
	assert.False(t, q.Disabled())
	require.NotNil(t, q.MinimumPoolTokenAmount)
	assert.Equal(t, big.NewInt(995_000_000), q.MinimumPoolTokenAmount.Raw)

	lp, err := solanago.ParseTokenAmount(ex.LPToken(), "1000")
	require.NoError(t, err)
	res, err := calc.WithdrawQuote(ex, lp, nil)
	require.NoError(t, err)
	assert.Equal(t, liquidity.WithdrawModeBalanced, res.Mode())
	assert.Equal(t, big.NewInt(497_500_000), res.Estimate(0).Raw)

	res, err = calc.WithdrawQuote(ex, lp, &tokens[1])
	require.NoError(t, err)
	assert.Nil(t, res.Estimate(0))
	require.NotNil(t, res.Estimate(1))
	assert.Equal(t, big.NewInt(995_000_000), res.Minimum(1).Raw)
}

func TestSnapshotRewards(t *testing.T) {
	data, err := os.ReadFile("testdata/checkpoints.json")
	require.NoError(t, err)
	set, err := ParseCheckpoints(data)
	require.NoError(t, err)

	engine := NewRewardEngine()
	r, err := engine.Read(set, time.Unix(1_700_000_100, 0))
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.InDelta(t, 25.0, r.Primary, 1e-9)
}
