package quarry

import (
	"context"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/krazyTry/saber-go/rewards"
	solanago "github.com/krazyTry/saber-go/solana"
)

// Replica is a secondary reward stream of a merge-mined position. A zero
// RewardToken mint is resolved from the quarry's rewarder when loading.
type Replica struct {
	Quarry      solana.PublicKey
	Miner       solana.PublicKey
	RewardToken solanago.Token
}

// PositionKeys derives the primary miner of authority and the miner its
// merge miner holds in the same quarry.
func PositionKeys(quarry, stakedMint, authority solana.PublicKey) (miner, mergeMinerMiner solana.PublicKey) {
	mm := DeriveMergeMinerAddress(DeriveMergePoolAddress(stakedMint), authority)
	return DeriveMinerAddress(quarry, authority), DeriveMinerAddress(quarry, mm)
}

// ReplicaMiner is the miner a merge miner owner holds in a replica quarry.
func ReplicaMiner(replicaQuarry, stakedMint, authority solana.PublicKey) solana.PublicKey {
	mm := DeriveMergeMinerAddress(DeriveMergePoolAddress(stakedMint), authority)
	return DeriveMinerAddress(replicaQuarry, mm)
}

// fetchAccounts returns the data of every non-zero key. Absent accounts are
// left out of the map.
func fetchAccounts(ctx context.Context, rpcClient *rpc.Client, keys ...solana.PublicKey) (map[solana.PublicKey][]byte, error) {
	want := make([]solana.PublicKey, 0, len(keys))
	seen := make(map[solana.PublicKey]bool, len(keys))
	for _, k := range keys {
		if k.IsZero() || seen[k] {
			continue
		}
		seen[k] = true
		want = append(want, k)
	}
	out := make(map[solana.PublicKey][]byte, len(want))
	if len(want) == 0 {
		return out, nil
	}
	res, err := solanago.GetMultipleAccountInfo(ctx, rpcClient, want)
	if err != nil {
		return nil, err
	}
	for i, acc := range res.Value {
		if acc != nil {
			out[want[i]] = acc.Data.GetBinary()
		}
	}
	return out, nil
}

// LoadCheckpoints reads the quarry, miner and replica accounts of a position
// and assembles its checkpoint set. miner and mergeMiner may be zero when
// the position has none.
func LoadCheckpoints(
	ctx context.Context,
	rpcClient *rpc.Client,
	quarry, miner, mergeMiner solana.PublicKey,
	replicas []Replica,
) (*rewards.CheckpointSet, error) {
	keys := []solana.PublicKey{quarry, miner, mergeMiner}
	for _, r := range replicas {
		keys = append(keys, r.Quarry, r.Miner)
	}
	accounts, err := fetchAccounts(ctx, rpcClient, keys...)
	if err != nil {
		return nil, fmt.Errorf("get quarry accounts: %w", err)
	}
	if replicas, err = resolveReplicaTokens(ctx, rpcClient, accounts, replicas); err != nil {
		return nil, err
	}
	return NewCheckpointSet(accounts, quarry, miner, mergeMiner, replicas)
}

func resolveReplicaTokens(ctx context.Context, rpcClient *rpc.Client, accounts map[solana.PublicKey][]byte, replicas []Replica) ([]Replica, error) {
	out := append([]Replica(nil), replicas...)
	rewarders := make([]solana.PublicKey, 0)
	for _, r := range out {
		if !r.RewardToken.Mint.IsZero() {
			continue
		}
		q, err := decodeQuarry(accounts, r.Quarry)
		if err != nil {
			return nil, err
		}
		rewarders = append(rewarders, q.RewarderKey)
	}
	if len(rewarders) == 0 {
		return out, nil
	}

	data, err := fetchAccounts(ctx, rpcClient, rewarders...)
	if err != nil {
		return nil, fmt.Errorf("get rewarders: %w", err)
	}
	mints := make([]solana.PublicKey, len(rewarders))
	for i, key := range rewarders {
		raw, ok := data[key]
		if !ok {
			return nil, fmt.Errorf("%w: rewarder %s", solanago.ErrAccountNotFound, key)
		}
		rw, err := new(RewarderLayout).Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode rewarder %s: %w", key, err)
		}
		mints[i] = rw.RewardsTokenMint
	}
	decoded, err := solanago.GetMultipleMints(ctx, rpcClient, mints...)
	if err != nil {
		return nil, err
	}

	j := 0
	for i := range out {
		if !out[i].RewardToken.Mint.IsZero() {
			continue
		}
		out[i].RewardToken = solanago.NewToken(mints[j], decoded[j].Decimals, "")
		j++
	}
	return out, nil
}

func decodeQuarry(accounts map[solana.PublicKey][]byte, key solana.PublicKey) (*Quarry, error) {
	data, ok := accounts[key]
	if !ok {
		return nil, fmt.Errorf("%w: quarry %s", solanago.ErrAccountNotFound, key)
	}
	q, err := new(QuarryLayout).Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode quarry %s: %w", key, err)
	}
	return q, nil
}

// decodeMiner returns nil when the miner account does not exist.
func decodeMiner(accounts map[solana.PublicKey][]byte, key, quarry solana.PublicKey) (*Miner, error) {
	data, ok := accounts[key]
	if !ok {
		return nil, nil
	}
	m, err := new(MinerLayout).Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode miner %s: %w", key, err)
	}
	if !m.Quarry.Equals(quarry) {
		return nil, fmt.Errorf("%w: miner %s belongs to quarry %s, want %s", ErrInvalidAccount, key, m.Quarry, quarry)
	}
	return m, nil
}

func minerStream(token solanago.Token, payroll *Payroll, m *Miner) *rewards.Stream {
	s := &rewards.Stream{RewardToken: token, Payroll: payroll}
	if m == nil {
		return s
	}
	s.StakedBalance = new(big.Int).SetUint64(m.Balance)
	s.RewardsPerTokenPaid = m.RewardsPerTokenPaid.BigInt()
	s.RewardsEarned = new(big.Int).SetUint64(m.RewardsEarned)
	return s
}

// NewCheckpointSet assembles a checkpoint set from raw account data keyed by
// address. A zero miner key stands for a position without a direct miner. A
// missing miner leaves the primary balance unknown.
func NewCheckpointSet(
	accounts map[solana.PublicKey][]byte,
	quarry, miner, mergeMiner solana.PublicKey,
	replicas []Replica,
) (*rewards.CheckpointSet, error) {
	q, err := decodeQuarry(accounts, quarry)
	if err != nil {
		return nil, err
	}
	payroll := NewPayroll(q)
	set := &rewards.CheckpointSet{Secondary: make([]*rewards.Stream, 0, len(replicas))}

	if miner.IsZero() {
		set.Primary = minerStream(SBRToken, payroll, &Miner{Quarry: quarry})
	} else {
		m, err := decodeMiner(accounts, miner, quarry)
		if err != nil {
			return nil, err
		}
		set.Primary = minerStream(SBRToken, payroll, m)
	}

	if !mergeMiner.IsZero() {
		m, err := decodeMiner(accounts, mergeMiner, quarry)
		if err != nil {
			return nil, err
		}
		if m != nil {
			set.MergeMiner = minerStream(SBRToken, payroll, m)
		}
	}

	for _, r := range replicas {
		rq, err := decodeQuarry(accounts, r.Quarry)
		if err != nil {
			return nil, err
		}
		m, err := decodeMiner(accounts, r.Miner, r.Quarry)
		if err != nil {
			return nil, err
		}
		if m == nil {
			set.Secondary = append(set.Secondary, nil)
			continue
		}
		set.Secondary = append(set.Secondary, minerStream(r.RewardToken, NewPayroll(rq), m))
	}
	return set, nil
}

// KeyedMiner pairs a decoded miner with its address.
type KeyedMiner struct {
	Address solana.PublicKey
	Miner   *Miner
}

// FindMiners lists every miner owned by authority.
func FindMiners(ctx context.Context, rpcClient *rpc.Client, authority solana.PublicKey) ([]KeyedMiner, error) {
	opts := solanago.GenProgramAccountFilter(MinerAccount, &solanago.Filter{
		Owner:  authority,
		Offset: solanago.ComputeStructOffset(&Miner{}, "Authority"),
	})
	outs, err := rpcClient.GetProgramAccountsWithOpts(ctx, MineProgramID, opts)
	if err != nil {
		return nil, fmt.Errorf("get miners of %s: %w", authority, err)
	}
	list := make([]KeyedMiner, 0, len(outs))
	for _, keyed := range outs {
		m, err := new(MinerLayout).Decode(keyed.Account.Data.GetBinary())
		if err != nil {
			return nil, fmt.Errorf("decode miner %s: %w", keyed.Pubkey, err)
		}
		list = append(list, KeyedMiner{Address: keyed.Pubkey, Miner: m})
	}
	return list, nil
}
