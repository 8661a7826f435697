package stableswap

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	solanago "github.com/krazyTry/saber-go/solana"
)

type loadOptions struct {
	now     func() time.Time
	symbols map[solana.PublicKey]string
}

type LoadOption func(*loadOptions)

// WithClock sets the time used to resolve an amp ramp.
func WithClock(now func() time.Time) LoadOption {
	return func(o *loadOptions) {
		o.now = now
	}
}

// WithSymbols attaches display symbols to mints.
func WithSymbols(symbols map[solana.PublicKey]string) LoadOption {
	return func(o *loadOptions) {
		o.symbols = symbols
	}
}

// LoadExchange fetches a swap account and the accounts it references and
// builds an Exchange snapshot.
func LoadExchange(ctx context.Context, rpcClient *rpc.Client, swapAccount solana.PublicKey, opts ...LoadOption) (*Exchange, error) {
	out, err := solanago.GetAccountInfo(ctx, rpcClient, swapAccount)
	if err != nil {
		return nil, fmt.Errorf("get swap account %s: %w", swapAccount, err)
	}
	info, err := new(SwapInfoLayout).Decode(out.Value.Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("decode swap account %s: %w", swapAccount, err)
	}

	mints, err := solanago.GetMultipleMints(ctx, rpcClient, info.MintA, info.MintB, info.PoolMint)
	if err != nil {
		return nil, err
	}
	accounts, err := solanago.GetMultipleTokenAccounts(ctx, rpcClient, info.TokenAccountA, info.TokenAccountB)
	if err != nil {
		return nil, err
	}

	return NewExchange(swapAccount, out.Value.Owner, info, mints, accounts, opts...)
}

// NewExchange assembles a snapshot from decoded accounts. mints holds mint A,
// mint B and the pool mint in that order.
func NewExchange(
	swapAccount, programID solana.PublicKey,
	info *SwapInfo,
	mints []*solanago.MintAccount,
	accounts []*solanago.Account,
	opts ...LoadOption,
) (*Exchange, error) {
	o := &loadOptions{now: time.Now}
	for _, fn := range opts {
		fn(o)
	}
	if len(mints) != 3 || len(accounts) != NCoins {
		return nil, fmt.Errorf("%w: want 3 mints and %d reserve accounts", ErrInvalidAccount, NCoins)
	}
	token := func(m *solanago.MintAccount, mint solana.PublicKey) solanago.Token {
		return solanago.NewToken(mint, m.Decimals, o.symbols[mint])
	}
	tokenA := token(mints[0], info.MintA)
	tokenB := token(mints[1], info.MintB)
	lpToken := token(mints[2], info.PoolMint)

	for i, acc := range accounts {
		want := []solana.PublicKey{info.MintA, info.MintB}[i]
		if !acc.Mint.Equals(want) {
			return nil, fmt.Errorf("%w: reserve %s holds mint %s, want %s", ErrInvalidAccount, acc.Address, acc.Mint, want)
		}
	}

	ex := &Exchange{
		SwapAccount: swapAccount,
		ProgramID:   programID,
		AmpFactor:   info.Ramp().AmpAt(o.now().Unix()),
		Ramp:        info.Ramp(),
		Reserves: [NCoins]Reserve{
			{
				ReserveAccount:  info.TokenAccountA,
				AdminFeeAccount: info.AdminFeeAccountA,
				Amount:          solanago.NewTokenAmountUint64(tokenA, accounts[0].Amount),
			},
			{
				ReserveAccount:  info.TokenAccountB,
				AdminFeeAccount: info.AdminFeeAccountB,
				Amount:          solanago.NewTokenAmountUint64(tokenB, accounts[1].Amount),
			},
		},
		LPTotalSupply: solanago.NewTokenAmountUint64(lpToken, mints[2].Supply),
		Fees:          info.Fees.Fees(),
		IsPaused:      info.IsPaused,
	}
	return ex, nil
}
