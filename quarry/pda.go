package quarry

import (
	"github.com/gagliardetto/solana-go"
)

func DeriveQuarryAddress(rewarder, tokenMint solana.PublicKey) solana.PublicKey {
	pub, _, _ := solana.FindProgramAddress([][]byte{[]byte("Quarry"), rewarder.Bytes(), tokenMint.Bytes()}, MineProgramID)
	return pub
}

func DeriveMinerAddress(quarry, authority solana.PublicKey) solana.PublicKey {
	pub, _, _ := solana.FindProgramAddress([][]byte{[]byte("Miner"), quarry.Bytes(), authority.Bytes()}, MineProgramID)
	return pub
}

func DeriveMergePoolAddress(primaryMint solana.PublicKey) solana.PublicKey {
	pub, _, _ := solana.FindProgramAddress([][]byte{[]byte("MergePool"), primaryMint.Bytes()}, MergeMineProgramID)
	return pub
}

func DeriveMergeMinerAddress(pool, owner solana.PublicKey) solana.PublicKey {
	pub, _, _ := solana.FindProgramAddress([][]byte{[]byte("MergeMiner"), pool.Bytes(), owner.Bytes()}, MergeMineProgramID)
	return pub
}
