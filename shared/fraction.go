package shared

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Fraction is an immutable exact rational. The zero value is 0.
type Fraction struct {
	r *big.Rat
}

func NewFraction(num, den int64) Fraction {
	if den == 0 {
		panic("shared: fraction with zero denominator")
	}
	return Fraction{r: big.NewRat(num, den)}
}

// NewFractionFromBig builds num/den. den must not be zero.
func NewFractionFromBig(num, den *big.Int) Fraction {
	if den == nil || den.Sign() == 0 {
		panic("shared: fraction with zero denominator")
	}
	return Fraction{r: new(big.Rat).SetFrac(num, den)}
}

func FractionFromInt(x *big.Int) Fraction {
	if x == nil {
		return Fraction{}
	}
	return Fraction{r: new(big.Rat).SetInt(x)}
}

func FractionFromRat(r *big.Rat) Fraction {
	if r == nil {
		return Fraction{}
	}
	return Fraction{r: new(big.Rat).Set(r)}
}

// FractionFromDecimal converts exactly; a decimal always has a finite rational form.
func FractionFromDecimal(d decimal.Decimal) Fraction {
	return Fraction{r: d.Rat()}
}

func (f Fraction) rat() *big.Rat {
	if f.r == nil {
		return new(big.Rat)
	}
	return f.r
}

// Rat returns a copy of the underlying rational.
func (f Fraction) Rat() *big.Rat {
	return new(big.Rat).Set(f.rat())
}

func (f Fraction) Numerator() *big.Int {
	return new(big.Int).Set(f.rat().Num())
}

func (f Fraction) Denominator() *big.Int {
	return new(big.Int).Set(f.rat().Denom())
}

func (f Fraction) Add(o Fraction) Fraction {
	return Fraction{r: new(big.Rat).Add(f.rat(), o.rat())}
}

func (f Fraction) Sub(o Fraction) Fraction {
	return Fraction{r: new(big.Rat).Sub(f.rat(), o.rat())}
}

func (f Fraction) Mul(o Fraction) Fraction {
	return Fraction{r: new(big.Rat).Mul(f.rat(), o.rat())}
}

func (f Fraction) MulInt(x *big.Int) Fraction {
	return f.Mul(FractionFromInt(x))
}

// Div panics when o is zero; callers check IsZero first.
func (f Fraction) Div(o Fraction) Fraction {
	if o.IsZero() {
		panic("shared: fraction division by zero")
	}
	return Fraction{r: new(big.Rat).Quo(f.rat(), o.rat())}
}

func (f Fraction) Neg() Fraction {
	return Fraction{r: new(big.Rat).Neg(f.rat())}
}

func (f Fraction) Abs() Fraction {
	return Fraction{r: new(big.Rat).Abs(f.rat())}
}

func (f Fraction) Sign() int {
	return f.rat().Sign()
}

func (f Fraction) IsZero() bool {
	return f.Sign() == 0
}

func (f Fraction) Cmp(o Fraction) int {
	return f.rat().Cmp(o.rat())
}

func (f Fraction) Equal(o Fraction) bool {
	return f.Cmp(o) == 0
}

func (f Fraction) LessThan(o Fraction) bool {
	return f.Cmp(o) < 0
}

func (f Fraction) GreaterThan(o Fraction) bool {
	return f.Cmp(o) > 0
}

// Floor rounds toward negative infinity. big.Rat keeps the denominator
// positive, so Euclidean division is a floor.
func (f Fraction) Floor() *big.Int {
	r := f.rat()
	return new(big.Int).Div(r.Num(), r.Denom())
}

// Decimal renders the fraction with the given number of decimal places.
func (f Fraction) Decimal(places int32) decimal.Decimal {
	return decimal.NewFromBigRat(f.rat(), places)
}

func (f Fraction) Float64() float64 {
	v, _ := f.rat().Float64()
	return v
}

func (f Fraction) String() string {
	return f.rat().RatString()
}
