package rewards

import (
	"math/big"
	"time"

	solanago "github.com/krazyTry/saber-go/solana"
)

const SecondsPerDay = 86_400

// DailyRewards projects the primary stream's earnings over the next day at
// the current emission rate. It returns nil when the primary checkpoint is
// incomplete.
func DailyRewards(set *CheckpointSet, now time.Time) (*solanago.TokenAmount, error) {
	if set == nil || !set.Primary.ready() {
		return nil, nil
	}
	t0 := now.Unix()
	start, err := set.Primary.earnedAt(t0)
	if err != nil {
		return nil, err
	}
	end, err := set.Primary.earnedAt(t0 + SecondsPerDay)
	if err != nil {
		return nil, err
	}
	out := solanago.NewTokenAmount(set.Primary.RewardToken, new(big.Int).Sub(end, start))
	return &out, nil
}
