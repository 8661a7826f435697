package quarry

import (
	"bytes"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	solanago "github.com/krazyTry/saber-go/solana"
)

// Quarry is a reward pool for one staked mint.
type Quarry struct {
	RewarderKey           solana.PublicKey
	TokenMintKey          solana.PublicKey
	Bump                  uint8
	Index                 uint16
	TokenMintDecimals     uint8
	FamineTs              int64
	LastUpdateTs          int64
	RewardsPerTokenStored binary.Uint128
	AnnualRewardsRate     uint64
	RewardsShare          uint64
	TotalTokensDeposited  uint64
	NumMiners             uint64
}

// Miner is one authority's stake in a quarry.
type Miner struct {
	Quarry              solana.PublicKey
	Authority           solana.PublicKey
	Bump                uint8
	TokenVaultKey       solana.PublicKey
	RewardsEarned       uint64
	RewardsPerTokenPaid binary.Uint128
	Balance             uint64
	Index               uint64
}

// MergeMiner stakes one owner's deposit across a primary quarry and its
// replicas.
type MergeMiner struct {
	Pool           solana.PublicKey
	Owner          solana.PublicKey
	Bump           uint8
	Index          uint64
	PrimaryBalance uint64
	ReplicaBalance uint64
}

// Rewarder issues one reward token across its quarries.
type Rewarder struct {
	Base                 solana.PublicKey
	Bump                 uint8
	Authority            solana.PublicKey
	PendingAuthority     solana.PublicKey
	NumQuarries          uint16
	AnnualRewardsRate    uint64
	TotalRewardsShares   uint64
	MintWrapper          solana.PublicKey
	RewardsTokenMint     solana.PublicKey
	ClaimFeeTokenAccount solana.PublicKey
	MaxClaimFeeMillibps  uint64
	PauseAuthority       solana.PublicKey
	IsPaused             bool
}

type RewarderLayout struct{}

func (l *RewarderLayout) Decode(data []byte) (*Rewarder, error) {
	r := &Rewarder{}
	if err := decodeAnchorAccount(RewarderAccount, data, r); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeAnchorAccount(name string, data []byte, v any) error {
	disc := solanago.Discriminator(name)
	if len(data) < len(disc) || !bytes.Equal(data[:len(disc)], disc[:]) {
		return fmt.Errorf("%w: not a %s account", ErrInvalidAccount, name)
	}
	if err := binary.NewBorshDecoder(data[len(disc):]).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidAccount, name, err)
	}
	return nil
}

type QuarryLayout struct{}

func (l *QuarryLayout) Decode(data []byte) (*Quarry, error) {
	q := &Quarry{}
	if err := decodeAnchorAccount(QuarryAccount, data, q); err != nil {
		return nil, err
	}
	return q, nil
}

type MinerLayout struct{}

func (l *MinerLayout) Decode(data []byte) (*Miner, error) {
	m := &Miner{}
	if err := decodeAnchorAccount(MinerAccount, data, m); err != nil {
		return nil, err
	}
	return m, nil
}

type MergeMinerLayout struct{}

func (l *MergeMinerLayout) Decode(data []byte) (*MergeMiner, error) {
	m := &MergeMiner{}
	if err := decodeAnchorAccount(MergeMinerAccount, data, m); err != nil {
		return nil, err
	}
	return m, nil
}
