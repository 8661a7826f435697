package quarry

import (
	"bytes"
	"math/big"
	"testing"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	solanago "github.com/krazyTry/saber-go/solana"
	"github.com/krazyTry/saber-go/u128"
	"github.com/stretchr/testify/require"
)

const checkpointTs = 1_700_000_000

var (
	rewarderKey = solana.NewWallet().PublicKey()
	lpMint      = solana.MustPublicKeyFromBase58("2poo1w1DL6yd2WNTCnNTzDqkC6MBXq7axo77P16yrBuf")
	authority   = solana.NewWallet().PublicKey()

	mnde = solanago.NewToken(solana.MustPublicKeyFromBase58("MNDEFzGvMt87ueuHvVU9VcTqsAP5b3fTGPsHuuPA5ey"), 9, "MNDE")
)

func encodeAccount(t *testing.T, name string, v any) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	disc := solanago.Discriminator(name)
	buf.Write(disc[:])
	require.NoError(t, binary.NewBorshEncoder(buf).Encode(v))
	return buf.Bytes()
}

func mustU128(t *testing.T, v *big.Int) binary.Uint128 {
	t.Helper()
	out, err := u128.FromBig(v)
	require.NoError(t, err)
	return out
}

// oneTokenPerSecond emits one whole reward token (6 decimals) per second
// across 1_000_000 staked raw units.
func oneTokenPerSecond(t *testing.T) *Quarry {
	return &Quarry{
		RewarderKey:           rewarderKey,
		TokenMintKey:          lpMint,
		FamineTs:              checkpointTs + 1_000_000,
		LastUpdateTs:          checkpointTs,
		RewardsPerTokenStored: mustU128(t, big.NewInt(0)),
		AnnualRewardsRate:     SecondsPerYear * 1_000_000,
		TotalTokensDeposited:  1_000_000,
		NumMiners:             2,
	}
}

func newMiner(t *testing.T, quarry solana.PublicKey, balance uint64) *Miner {
	return &Miner{
		Quarry:              quarry,
		Authority:           authority,
		TokenVaultKey:       solana.NewWallet().PublicKey(),
		RewardsEarned:       7,
		RewardsPerTokenPaid: mustU128(t, big.NewInt(0)),
		Balance:             balance,
	}
}
