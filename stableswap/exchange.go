package stableswap

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/krazyTry/saber-go/shared"
	solanago "github.com/krazyTry/saber-go/solana"
)

// Reserve is one side of the pool.
type Reserve struct {
	ReserveAccount  solana.PublicKey
	AdminFeeAccount solana.PublicKey
	Amount          solanago.TokenAmount
}

func (r Reserve) Token() solanago.Token {
	return r.Amount.Token
}

// Fees are the pool's fee rates. Admin rates are the share of the collected
// fee that goes to the admin account.
type Fees struct {
	Trade         shared.Percent
	Withdraw      shared.Percent
	AdminTrade    shared.Percent
	AdminWithdraw shared.Percent
}

// AmpRamp describes a linear amplification change between two timestamps.
type AmpRamp struct {
	InitialAmp  uint64
	TargetAmp   uint64
	StartRampTs int64
	StopRampTs  int64
}

// AmpAt returns the effective amplification coefficient at unix time now.
func (r AmpRamp) AmpAt(now int64) *big.Int {
	initial := new(big.Int).SetUint64(r.InitialAmp)
	target := new(big.Int).SetUint64(r.TargetAmp)
	if now >= r.StopRampTs || r.StopRampTs <= r.StartRampTs {
		return target
	}
	if now <= r.StartRampTs {
		return initial
	}
	timeRange := big.NewInt(r.StopRampTs - r.StartRampTs)
	timeDelta := big.NewInt(now - r.StartRampTs)

	diff := new(big.Int).Sub(target, initial)
	step := new(big.Int).Quo(new(big.Int).Mul(new(big.Int).Abs(diff), timeDelta), timeRange)
	if diff.Sign() >= 0 {
		return initial.Add(initial, step)
	}
	return initial.Sub(initial, step)
}

// Exchange is a point-in-time snapshot of a pool. It is never mutated;
// WithDeposit derives a new one.
type Exchange struct {
	SwapAccount   solana.PublicKey
	ProgramID     solana.PublicKey
	AmpFactor     *big.Int
	Ramp          AmpRamp
	Reserves      [NCoins]Reserve
	LPTotalSupply solanago.TokenAmount
	Fees          Fees
	IsPaused      bool
}

// Validate checks that the snapshot describes a usable two-asset pool.
func (e *Exchange) Validate() error {
	if e == nil {
		return errors.New("exchange is nil")
	}
	a, b := e.Reserves[0].Token(), e.Reserves[1].Token()
	if a.Mint.IsZero() || b.Mint.IsZero() {
		return errors.New("exchange reserve token is not set")
	}
	if a.Equals(b) {
		return fmt.Errorf("exchange reserves share mint %s", a.Mint)
	}
	for i, r := range e.Reserves {
		if r.Amount.Sign() < 0 {
			return fmt.Errorf("exchange reserve %d is negative", i)
		}
	}
	if e.LPTotalSupply.Sign() < 0 {
		return errors.New("exchange lp supply is negative")
	}
	if e.AmpFactor == nil || e.AmpFactor.Sign() <= 0 {
		return errors.New("exchange amp factor must be positive")
	}
	return nil
}

func (e *Exchange) Tokens() [NCoins]solanago.Token {
	return [NCoins]solanago.Token{e.Reserves[0].Token(), e.Reserves[1].Token()}
}

func (e *Exchange) LPToken() solanago.Token {
	return e.LPTotalSupply.Token
}

// ReserveIndex returns the position of t among the reserves.
func (e *Exchange) ReserveIndex(t solanago.Token) (int, error) {
	for i, r := range e.Reserves {
		if r.Token().Equals(t) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownToken, t)
}

// ReserveAmounts returns copies of the raw reserve balances.
func (e *Exchange) ReserveAmounts() [NCoins]*big.Int {
	return [NCoins]*big.Int{
		shared.CloneInt(e.Reserves[0].Amount.Raw),
		shared.CloneInt(e.Reserves[1].Amount.Raw),
	}
}

// WithDeposit returns a copy of e with the deposit added to the reserves and
// mint added to the lp supply.
func (e *Exchange) WithDeposit(amountA, amountB, mint *big.Int) *Exchange {
	out := *e
	out.AmpFactor = shared.CloneInt(e.AmpFactor)
	deltas := [NCoins]*big.Int{amountA, amountB}
	for i := range out.Reserves {
		raw := new(big.Int).Add(shared.CloneInt(e.Reserves[i].Amount.Raw), shared.CloneInt(deltas[i]))
		out.Reserves[i].Amount = solanago.TokenAmount{Token: e.Reserves[i].Token(), Raw: raw}
	}
	out.LPTotalSupply = solanago.TokenAmount{
		Token: e.LPToken(),
		Raw:   new(big.Int).Add(shared.CloneInt(e.LPTotalSupply.Raw), shared.CloneInt(mint)),
	}
	return &out
}
