package shared

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Percent is a signed ratio where 1 means 100%.
type Percent struct {
	f Fraction
}

var (
	ZeroPercent = Percent{}
	OnePercent  = NewPercent(1, 100)
	FullPercent = NewPercent(1, 1)
)

func NewPercent(num, den int64) Percent {
	return Percent{f: NewFraction(num, den)}
}

func NewPercentFromBig(num, den *big.Int) Percent {
	return Percent{f: NewFractionFromBig(num, den)}
}

func PercentFromFraction(f Fraction) Percent {
	return Percent{f: f}
}

// PercentFromBasisPoints maps 50 to 0.5%.
func PercentFromBasisPoints(bps int64) Percent {
	return NewPercent(bps, BasisPointMax)
}

// ParsePercent reads a human percentage such as "0.5" or "0.5%" (both 0.5%).
func ParsePercent(s string) (Percent, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Percent{}, fmt.Errorf("parse percent %q: %w", s, err)
	}
	return Percent{f: FractionFromDecimal(d).Div(NewFraction(100, 1))}, nil
}

func (p Percent) Fraction() Fraction {
	return p.f
}

func (p Percent) Add(o Percent) Percent {
	return Percent{f: p.f.Add(o.f)}
}

func (p Percent) Sub(o Percent) Percent {
	return Percent{f: p.f.Sub(o.f)}
}

func (p Percent) Abs() Percent {
	return Percent{f: p.f.Abs()}
}

func (p Percent) Neg() Percent {
	return Percent{f: p.f.Neg()}
}

func (p Percent) Sign() int {
	return p.f.Sign()
}

func (p Percent) IsZero() bool {
	return p.f.IsZero()
}

func (p Percent) Cmp(o Percent) int {
	return p.f.Cmp(o.f)
}

func (p Percent) Equal(o Percent) bool {
	return p.f.Equal(o.f)
}

func (p Percent) LessThan(o Percent) bool {
	return p.f.LessThan(o.f)
}

func (p Percent) GreaterThan(o Percent) bool {
	return p.f.GreaterThan(o.f)
}

// Decimal returns the value in percent units, e.g. 0.005 -> 0.5.
func (p Percent) Decimal(places int32) decimal.Decimal {
	return p.f.Mul(NewFraction(100, 1)).Decimal(places)
}

func (p Percent) Float64() float64 {
	return p.f.Float64()
}

func (p Percent) String() string {
	return p.Decimal(4).StringFixed(4) + "%"
}

// ReduceBy returns floor(amount * (1 - p)), never below zero.
func ReduceBy(amount *big.Int, p Percent) *big.Int {
	if amount == nil {
		return nil
	}
	out := FullPercent.Sub(p).Fraction().MulInt(amount).Floor()
	if out.Sign() < 0 {
		return big.NewInt(0)
	}
	return out
}
