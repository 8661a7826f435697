package solana

import "github.com/gagliardetto/solana-go"

// Filter narrows a program account scan to accounts holding Owner at Offset.
type Filter struct {
	Owner  solana.PublicKey
	Offset uint64
}
