package solana

import (
	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

type AccountState uint8

const (
	AccountStateUninitialized AccountState = 0
	AccountStateInitialized   AccountState = 1
	AccountStateFrozen        AccountState = 2
)

// Account is an SPL token account. Swap reserves and LP positions are both
// held in these.
type Account struct {
	Address       solana.PublicKey
	Mint          solana.PublicKey
	Owner         solana.PublicKey
	Amount        uint64
	IsInitialized bool
	IsFrozen      bool
}

// tokenAccountLayout https://github.com/solana-labs/solana-program-library/blob/d72289c79a04411c69a8bf1054f7156b6196f9b3/token/js/src/state/account.ts#L69
type tokenAccountLayout struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       uint32
	Delegate             solana.PublicKey
	State                uint8
	IsNativeOption       uint32
	IsNative             uint64
	DelegatedAmount      uint64
	CloseAuthorityOption uint32
	CloseAuthority       solana.PublicKey
}

// TokenAccountSize is the byte length of an SPL token account.
const TokenAccountSize = 165

type AccountLayout struct {
}

func (l *AccountLayout) Decode(data []byte) (*Account, error) {
	raw := &tokenAccountLayout{}
	if err := binary.NewBinDecoder(data).Decode(raw); err != nil {
		return nil, err
	}
	state := AccountState(raw.State)
	return &Account{
		Mint:          raw.Mint,
		Owner:         raw.Owner,
		Amount:        raw.Amount,
		IsInitialized: state != AccountStateUninitialized,
		IsFrozen:      state == AccountStateFrozen,
	}, nil
}
