package solana

import (
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/krazyTry/saber-go/decimal_math"
	"github.com/krazyTry/saber-go/shared"
	"github.com/shopspring/decimal"
)

// Token identifies an SPL mint together with its display metadata.
type Token struct {
	Mint     solana.PublicKey
	Decimals uint8
	Symbol   string
}

func NewToken(mint solana.PublicKey, decimals uint8, symbol string) Token {
	return Token{Mint: mint, Decimals: decimals, Symbol: symbol}
}

// Equals compares mints only.
func (t Token) Equals(o Token) bool {
	return t.Mint.Equals(o.Mint)
}

func (t Token) String() string {
	if t.Symbol != "" {
		return t.Symbol
	}
	return t.Mint.String()
}

// MintAccount is a decoded SPL mint with the program that owns it.
type MintAccount struct {
	token.Mint
	Address solana.PublicKey
	Owner   solana.PublicKey
}

type MintLayout struct {
}

func (l *MintLayout) Decode(data []byte) (*MintAccount, error) {
	mint := token.Mint{}

	if err := mint.Decode(data); err != nil {
		return nil, err
	}
	return &MintAccount{Mint: mint}, nil
}

// TokenAmount is a raw integer quantity of a token.
type TokenAmount struct {
	Token Token
	Raw   *big.Int
}

func NewTokenAmount(t Token, raw *big.Int) TokenAmount {
	return TokenAmount{Token: t, Raw: shared.CloneInt(raw)}
}

func NewTokenAmountUint64(t Token, raw uint64) TokenAmount {
	return TokenAmount{Token: t, Raw: new(big.Int).SetUint64(raw)}
}

// ParseTokenAmount reads a UI amount such as "12.5" into raw units, truncating
// digits beyond the token's precision.
func ParseTokenAmount(t Token, ui string) (TokenAmount, error) {
	d, err := decimal.NewFromString(ui)
	if err != nil {
		return TokenAmount{}, fmt.Errorf("parse %s amount %q: %w", t, ui, err)
	}
	return TokenAmount{Token: t, Raw: decimal_math.FromUI(d, t.Decimals)}, nil
}

func (a TokenAmount) raw() *big.Int {
	if a.Raw == nil {
		return big.NewInt(0)
	}
	return a.Raw
}

func (a TokenAmount) IsZero() bool {
	return a.raw().Sign() == 0
}

func (a TokenAmount) Sign() int {
	return a.raw().Sign()
}

func (a TokenAmount) mustMatch(o TokenAmount) {
	if !a.Token.Equals(o.Token) {
		panic(fmt.Sprintf("solana: token mismatch %s != %s", a.Token, o.Token))
	}
}

func (a TokenAmount) Add(o TokenAmount) TokenAmount {
	a.mustMatch(o)
	return TokenAmount{Token: a.Token, Raw: new(big.Int).Add(a.raw(), o.raw())}
}

func (a TokenAmount) Sub(o TokenAmount) TokenAmount {
	a.mustMatch(o)
	return TokenAmount{Token: a.Token, Raw: new(big.Int).Sub(a.raw(), o.raw())}
}

// ReduceBy returns the amount less p, rounded down.
func (a TokenAmount) ReduceBy(p shared.Percent) TokenAmount {
	return TokenAmount{Token: a.Token, Raw: shared.ReduceBy(a.raw(), p)}
}

// DivideBy returns a/o as a percent. o must be non-zero.
func (a TokenAmount) DivideBy(o TokenAmount) shared.Percent {
	return shared.NewPercentFromBig(a.raw(), o.raw())
}

// Decimal is the amount in UI units.
func (a TokenAmount) Decimal() decimal.Decimal {
	return decimal_math.ToUI(a.raw(), a.Token.Decimals)
}

func (a TokenAmount) Float64() float64 {
	return a.Decimal().InexactFloat64()
}

func (a TokenAmount) String() string {
	return a.Decimal().String() + " " + a.Token.String()
}
