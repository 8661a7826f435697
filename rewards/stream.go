package rewards

import (
	"math/big"

	"github.com/krazyTry/saber-go/shared"
	solanago "github.com/krazyTry/saber-go/solana"
)

// Payroll converts on-chain time into the rewards a position has earned.
type Payroll interface {
	RewardsEarnedAt(timeSec int64, staked, paid, earned *big.Int) (*big.Int, error)
}

// Stream is the last on-chain checkpoint of one reward stream.
type Stream struct {
	RewardToken         solanago.Token
	StakedBalance       *big.Int
	RewardsPerTokenPaid *big.Int
	RewardsEarned       *big.Int
	Payroll             Payroll
}

func (s *Stream) ready() bool {
	return s != nil && s.StakedBalance != nil && s.Payroll != nil
}

func (s *Stream) earnedAt(timeSec int64) (*big.Int, error) {
	return s.Payroll.RewardsEarnedAt(
		timeSec,
		s.StakedBalance,
		shared.CloneInt(s.RewardsPerTokenPaid),
		shared.CloneInt(s.RewardsEarned),
	)
}

// CheckpointSet holds every stream of a staked position.
//
// MergeMiner is the legacy merge-miner credit on the primary quarry. It only
// counts toward the primary total while the position has no secondary
// streams. A nil Secondary means replica data has not been loaded yet; an
// empty one means the position has none. Nil entries in Secondary are
// replicas without a miner and read as zero.
type CheckpointSet struct {
	Primary    *Stream
	MergeMiner *Stream
	Secondary  []*Stream
}

// Ready reports whether a reading can be produced from the set.
func (c *CheckpointSet) Ready() bool {
	if c == nil || !c.Primary.ready() || c.Secondary == nil {
		return false
	}
	if c.MergeMiner != nil && !c.MergeMiner.ready() {
		return false
	}
	for _, s := range c.Secondary {
		if s != nil && !s.ready() {
			return false
		}
	}
	return true
}

func (c *CheckpointSet) includesMergeMiner() bool {
	return c.MergeMiner != nil && len(c.Secondary) == 0
}

// primaryEarnedAt is the raw primary reward, merge-miner credit included.
func (c *CheckpointSet) primaryEarnedAt(timeSec int64) (*big.Int, error) {
	total, err := c.Primary.earnedAt(timeSec)
	if err != nil {
		return nil, err
	}
	if c.includesMergeMiner() {
		mm, err := c.MergeMiner.earnedAt(timeSec)
		if err != nil {
			return nil, err
		}
		total = new(big.Int).Add(total, mm)
	}
	return total, nil
}

// values returns every stream at timeSec in display units.
func (c *CheckpointSet) values(timeSec int64) (float64, []float64, error) {
	raw, err := c.primaryEarnedAt(timeSec)
	if err != nil {
		return 0, nil, err
	}
	primary := solanago.NewTokenAmount(c.Primary.RewardToken, raw).Float64()

	secondary := make([]float64, len(c.Secondary))
	for i, s := range c.Secondary {
		if s == nil {
			continue
		}
		raw, err := s.earnedAt(timeSec)
		if err != nil {
			return 0, nil, err
		}
		secondary[i] = solanago.NewTokenAmount(s.RewardToken, raw).Float64()
	}
	return primary, secondary, nil
}
