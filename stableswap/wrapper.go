package stableswap

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/saber-go/decimal_math"
	solanago "github.com/krazyTry/saber-go/solana"
)

// Wrapper converts between a user-facing token and the token held in a
// reserve.
type Wrapper interface {
	Wrap(amount solanago.TokenAmount) solanago.TokenAmount
	Unwrap(amount solanago.TokenAmount) solanago.TokenAmount
}

// IdentityWrapper is used for pools holding user-facing tokens directly.
type IdentityWrapper struct{}

func (IdentityWrapper) Wrap(amount solanago.TokenAmount) solanago.TokenAmount {
	return amount
}

func (IdentityWrapper) Unwrap(amount solanago.TokenAmount) solanago.TokenAmount {
	return amount
}

// AddDecimalsWrapper maps Underlying onto Wrapped, a token with more
// decimals holding the same value. Other tokens pass through.
type AddDecimalsWrapper struct {
	Underlying solanago.Token
	Wrapped    solanago.Token
}

func NewAddDecimalsWrapper(underlying, wrapped solanago.Token) (*AddDecimalsWrapper, error) {
	if wrapped.Decimals < underlying.Decimals {
		return nil, fmt.Errorf("wrapped %s has fewer decimals than %s", wrapped, underlying)
	}
	return &AddDecimalsWrapper{Underlying: underlying, Wrapped: wrapped}, nil
}

func (w *AddDecimalsWrapper) Wrap(amount solanago.TokenAmount) solanago.TokenAmount {
	if !amount.Token.Equals(w.Underlying) {
		return amount
	}
	raw := decimal_math.Rescale(rawOf(amount), w.Underlying.Decimals, w.Wrapped.Decimals)
	return solanago.NewTokenAmount(w.Wrapped, raw)
}

// Unwrap drops the extra precision, rounding toward zero.
func (w *AddDecimalsWrapper) Unwrap(amount solanago.TokenAmount) solanago.TokenAmount {
	if !amount.Token.Equals(w.Wrapped) {
		return amount
	}
	raw := decimal_math.Rescale(rawOf(amount), w.Wrapped.Decimals, w.Underlying.Decimals)
	return solanago.NewTokenAmount(w.Underlying, raw)
}

func rawOf(a solanago.TokenAmount) *big.Int {
	if a.Raw == nil {
		return big.NewInt(0)
	}
	return a.Raw
}

// AmountPair maps user amounts onto the reserves after wrapping. Reserves
// without a matching amount get zero.
func (e *Exchange) AmountPair(w Wrapper, amounts ...solanago.TokenAmount) ([NCoins]*big.Int, error) {
	if w == nil {
		w = IdentityWrapper{}
	}
	out := [NCoins]*big.Int{big.NewInt(0), big.NewInt(0)}
	for _, a := range amounts {
		wrapped := w.Wrap(a)
		idx, err := e.ReserveIndex(wrapped.Token)
		if err != nil {
			return out, err
		}
		out[idx].Add(out[idx], rawOf(wrapped))
	}
	return out, nil
}
