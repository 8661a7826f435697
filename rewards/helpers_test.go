package rewards

import (
	"errors"
	"math/big"
	"time"

	"github.com/gagliardetto/solana-go"
	solanago "github.com/krazyTry/saber-go/solana"
)

const startSec = 1_699_999_000

var (
	sbr = solanago.NewToken(solana.MustPublicKeyFromBase58("Saber2gLauYim4Mvftnrasomsv6NvAuncvMEZwcLpD1"), 6, "SBR")
	mnde = solanago.NewToken(solana.MustPublicKeyFromBase58("MNDEFzGvMt87ueuHvVU9VcTqsAP5b3fTGPsHuuPA5ey"), 9, "MNDE")

	// t0 is 100ms past the second that is 1000s after startSec.
	t0 = time.Unix(startSec+1000, 100*int64(time.Millisecond))

	errPayroll = errors.New("rewards per token paid ahead of quarry")
)

// linearPayroll pays perSec raw units every second since start.
type linearPayroll struct {
	start  int64
	perSec int64
}

func (p linearPayroll) RewardsEarnedAt(timeSec int64, staked, paid, earned *big.Int) (*big.Int, error) {
	elapsed := timeSec - p.start
	if elapsed < 0 {
		elapsed = 0
	}
	out := new(big.Int).Mul(big.NewInt(p.perSec), big.NewInt(elapsed))
	return out.Add(out, earned), nil
}

type brokenPayroll struct{}

func (brokenPayroll) RewardsEarnedAt(int64, *big.Int, *big.Int, *big.Int) (*big.Int, error) {
	return nil, errPayroll
}

func stream(token solanago.Token, perSec int64) *Stream {
	return &Stream{
		RewardToken:         token,
		StakedBalance:       big.NewInt(1_000_000),
		RewardsPerTokenPaid: big.NewInt(0),
		RewardsEarned:       big.NewInt(0),
		Payroll:             linearPayroll{start: startSec, perSec: perSec},
	}
}

// oneSBRPerSecond is a primary-only set earning 1 SBR per second.
func oneSBRPerSecond() *CheckpointSet {
	return &CheckpointSet{
		Primary:   stream(sbr, 1_000_000),
		Secondary: []*Stream{},
	}
}
