package quarry

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/saber-go/rewards"
	"github.com/krazyTry/saber-go/shared"
)

// Payroll is the emission schedule of a quarry at its last checkpoint.
type Payroll struct {
	FamineTs              int64
	LastCheckpointTs      int64
	AnnualRewardsRate     *big.Int
	RewardsPerTokenStored *big.Int
	TotalTokensDeposited  *big.Int
}

var _ rewards.Payroll = (*Payroll)(nil)

func NewPayroll(q *Quarry) *Payroll {
	return &Payroll{
		FamineTs:              q.FamineTs,
		LastCheckpointTs:      q.LastUpdateTs,
		AnnualRewardsRate:     new(big.Int).SetUint64(q.AnnualRewardsRate),
		RewardsPerTokenStored: q.RewardsPerTokenStored.BigInt(),
		TotalTokensDeposited:  new(big.Int).SetUint64(q.TotalTokensDeposited),
	}
}

// RewardsPerToken is the accumulated reward per staked token at timeSec,
// scaled by PrecisionMultiplier. Emission stops at the famine timestamp.
func (p *Payroll) RewardsPerToken(timeSec int64) *big.Int {
	stored := shared.CloneInt(p.RewardsPerTokenStored)
	if p.TotalTokensDeposited == nil || p.TotalTokensDeposited.Sign() == 0 {
		return stored
	}
	applicable := min(timeSec, p.FamineTs)
	worked := applicable - p.LastCheckpointTs
	if worked <= 0 {
		return stored
	}

	reward := new(big.Int).Mul(big.NewInt(worked), PrecisionMultiplier)
	reward.Mul(reward, shared.CloneInt(p.AnnualRewardsRate))
	reward.Quo(reward, big.NewInt(SecondsPerYear))
	reward.Quo(reward, p.TotalTokensDeposited)
	return stored.Add(stored, reward)
}

// RewardsEarnedAt is the total claimable by a miner holding staked tokens,
// given its last paid rewards per token and already earned rewards.
func (p *Payroll) RewardsEarnedAt(timeSec int64, staked, paid, earned *big.Int) (*big.Int, error) {
	if staked == nil {
		return nil, fmt.Errorf("staked balance is required")
	}
	net := new(big.Int).Sub(p.RewardsPerToken(timeSec), shared.CloneInt(paid))
	if net.Sign() < 0 {
		return nil, fmt.Errorf("%w: at %d", ErrRewardsOverpaid, timeSec)
	}
	out := new(big.Int).Mul(staked, net)
	out.Quo(out, PrecisionMultiplier)
	return out.Add(out, shared.CloneInt(earned)), nil
}
