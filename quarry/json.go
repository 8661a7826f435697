package quarry

import (
	"fmt"
	"math"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/krazyTry/saber-go/rewards"
	solanago "github.com/krazyTry/saber-go/solana"
	"github.com/krazyTry/saber-go/u128"
	"github.com/tidwall/gjson"
)

// ParseCheckpointsJSON reads a position checkpoint file:
//
//	{
//	  "quarry": {"famineTs": 9223372036854775807, "lastUpdateTs": 1700000000,
//	             "annualRewardsRate": "...", "rewardsPerTokenStored": "...", "totalTokensDeposited": "..."},
//	  "miner": {"balance": "...", "rewardsPerTokenPaid": "...", "rewardsEarned": "..."},
//	  "mergeMiner": {"balance": "...", "rewardsPerTokenPaid": "...", "rewardsEarned": "..."},
//	  "secondary": [
//	    {"rewardToken": {"mint": "...", "decimals": 9, "symbol": "MNDE"}, "quarry": {...}, "miner": {...}},
//	    null
//	  ]
//	}
//
// "rewardToken" defaults to SBR. A missing "miner" leaves the balance
// unknown and a missing "secondary" means replicas were not loaded.
func ParseCheckpointsJSON(data []byte) (*rewards.CheckpointSet, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidAccount)
	}
	root := gjson.ParseBytes(data)

	primary, err := parseStream(root)
	if err != nil {
		return nil, fmt.Errorf("primary: %w", err)
	}
	set := &rewards.CheckpointSet{Primary: primary}

	if mm := root.Get("mergeMiner"); mm.Exists() && mm.Type != gjson.Null {
		checkpoint, err := parseMiner(mm)
		if err != nil {
			return nil, fmt.Errorf("mergeMiner: %w", err)
		}
		set.MergeMiner = &rewards.Stream{RewardToken: primary.RewardToken, Payroll: primary.Payroll}
		checkpoint.applyTo(set.MergeMiner)
	}

	if sec := root.Get("secondary"); sec.Exists() && sec.Type != gjson.Null {
		items := sec.Array()
		set.Secondary = make([]*rewards.Stream, 0, len(items))
		for i, item := range items {
			if item.Type == gjson.Null {
				set.Secondary = append(set.Secondary, nil)
				continue
			}
			s, err := parseStream(item)
			if err != nil {
				return nil, fmt.Errorf("secondary[%d]: %w", i, err)
			}
			set.Secondary = append(set.Secondary, s)
		}
	}
	return set, nil
}

type minerCheckpoint struct {
	balance, paid, earned *big.Int
}

func (c minerCheckpoint) applyTo(s *rewards.Stream) {
	s.StakedBalance = c.balance
	s.RewardsPerTokenPaid = c.paid
	s.RewardsEarned = c.earned
}

func parseStream(v gjson.Result) (*rewards.Stream, error) {
	token := SBRToken
	if t := v.Get("rewardToken"); t.Exists() {
		var err error
		if token, err = parseToken(t); err != nil {
			return nil, fmt.Errorf("rewardToken: %w", err)
		}
	}
	s := &rewards.Stream{RewardToken: token}

	if q := v.Get("quarry"); q.Exists() {
		payroll, err := parsePayroll(q)
		if err != nil {
			return nil, fmt.Errorf("quarry: %w", err)
		}
		s.Payroll = payroll
	}
	if m := v.Get("miner"); m.Exists() && m.Type != gjson.Null {
		checkpoint, err := parseMiner(m)
		if err != nil {
			return nil, fmt.Errorf("miner: %w", err)
		}
		checkpoint.applyTo(s)
	}
	return s, nil
}

func parsePayroll(v gjson.Result) (*Payroll, error) {
	p := &Payroll{
		FamineTs:         v.Get("famineTs").Int(),
		LastCheckpointTs: v.Get("lastUpdateTs").Int(),
	}
	var err error
	if p.AnnualRewardsRate, err = parseU64(v.Get("annualRewardsRate")); err != nil {
		return nil, fmt.Errorf("annualRewardsRate: %w", err)
	}
	if p.RewardsPerTokenStored, err = parseU128(v.Get("rewardsPerTokenStored")); err != nil {
		return nil, fmt.Errorf("rewardsPerTokenStored: %w", err)
	}
	if p.TotalTokensDeposited, err = parseU64(v.Get("totalTokensDeposited")); err != nil {
		return nil, fmt.Errorf("totalTokensDeposited: %w", err)
	}
	if !v.Get("famineTs").Exists() {
		p.FamineTs = math.MaxInt64
	}
	return p, nil
}

func parseMiner(v gjson.Result) (minerCheckpoint, error) {
	var (
		c   minerCheckpoint
		err error
	)
	if c.balance, err = parseU64(v.Get("balance")); err != nil {
		return c, fmt.Errorf("balance: %w", err)
	}
	if c.paid, err = parseU128(v.Get("rewardsPerTokenPaid")); err != nil {
		return c, fmt.Errorf("rewardsPerTokenPaid: %w", err)
	}
	if c.earned, err = parseU64(v.Get("rewardsEarned")); err != nil {
		return c, fmt.Errorf("rewardsEarned: %w", err)
	}
	return c, nil
}

func parseToken(v gjson.Result) (solanago.Token, error) {
	mint, err := solana.PublicKeyFromBase58(v.Get("mint").String())
	if err != nil {
		return solanago.Token{}, fmt.Errorf("mint: %w", err)
	}
	decimals := v.Get("decimals").Uint()
	if decimals > 255 {
		return solanago.Token{}, fmt.Errorf("decimals %d out of range", decimals)
	}
	return solanago.NewToken(mint, uint8(decimals), v.Get("symbol").String()), nil
}

// parseU128 treats a missing field as zero.
func parseU128(v gjson.Result) (*big.Int, error) {
	if !v.Exists() {
		return big.NewInt(0), nil
	}
	return u128.ParseBig(v.String())
}

func parseU64(v gjson.Result) (*big.Int, error) {
	out, err := parseU128(v)
	if err != nil {
		return nil, err
	}
	if out.BitLen() > 64 {
		return nil, fmt.Errorf("%s overflows u64", out)
	}
	return out, nil
}
