package u128

import (
	"errors"
	"fmt"
	"math/big"

	binary "github.com/gagliardetto/binary"
)

var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

type Uint128 binary.Uint128

func (u *Uint128) Scan(s fmt.ScanState, ch rune) error {
	i := new(big.Int)
	if err := i.Scan(s, ch); err != nil {
		return err
	}
	return u.setBig(i)
}

func (u *Uint128) setBig(i *big.Int) error {
	if i.Sign() < 0 {
		return errors.New("value cannot be negative")
	} else if i.BitLen() > 128 {
		return errors.New("value overflows Uint128")
	}
	u.Lo = new(big.Int).And(i, new(big.Int).SetUint64(^uint64(0))).Uint64()
	u.Hi = new(big.Int).Rsh(i, 64).Uint64()
	return nil
}

// Parse reads a base-10 u128 such as a rewards-per-token checkpoint.
func Parse(num string) (binary.Uint128, error) {
	out := binary.NewUint128LittleEndian()
	if _, err := fmt.Sscan(num, (*Uint128)(out)); err != nil {
		return binary.Uint128{}, fmt.Errorf("parse u128 %q: %w", num, err)
	}
	return *out, nil
}

func GenUint128FromString(num string) binary.Uint128 {
	out, err := Parse(num)
	if err != nil {
		panic(err)
	}
	return out
}

// FromBig converts v, failing when it does not fit in 128 bits.
func FromBig(v *big.Int) (binary.Uint128, error) {
	out := binary.NewUint128LittleEndian()
	if v == nil {
		return *out, nil
	}
	if err := (*Uint128)(out).setBig(v); err != nil {
		return binary.Uint128{}, err
	}
	return *out, nil
}

// ParseBig reads a base-10 u128 straight into a big.Int.
func ParseBig(num string) (*big.Int, error) {
	v, err := Parse(num)
	if err != nil {
		return nil, err
	}
	return v.BigInt(), nil
}

// Max is 2^128 - 1.
func Max() *big.Int {
	return new(big.Int).Set(maxUint128)
}
