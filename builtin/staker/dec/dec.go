// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package dec provides checked 18 decimal fixed point arithmetic over
// cosmossdk.io/math LegacyDec, and conversions from and to integer amounts.
// Every fractional step truncates toward zero. Operations that would panic
// inside LegacyDec are reported as overflow reverts instead.
package dec

import (
	"math/big"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/wattpeak/staker/builtin/staker/reverts"
)

// Precision is the number of decimal places.
const Precision = math.LegacyPrecision

var precisionMultiplier = new(big.Int).Exp(big.NewInt(10), big.NewInt(Precision), nil)

// Dec is an 18 decimal fixed point number.
type Dec = math.LegacyDec

func Zero() Dec {
	return math.LegacyZeroDec()
}

// FromUint64 converts an integer to Dec.
func FromUint64(v uint64) Dec {
	return math.LegacyNewDecFromBigInt(new(big.Int).SetUint64(v))
}

// FromUint256 converts an integer amount to Dec.
func FromUint256(v *uint256.Int) (result Dec, err error) {
	defer guard("decimal conversion", &err)
	if v == nil {
		return Zero(), nil
	}
	return math.LegacyNewDecFromBigInt(v.ToBig()), nil
}

// FromAtomics builds a Dec from its 18 decimal atomic representation.
// A nil value yields zero.
func FromAtomics(atomics *big.Int) Dec {
	if atomics == nil {
		return Zero()
	}
	return math.LegacyNewDecFromBigIntWithPrec(atomics, Precision)
}

// Atomics returns the 18 decimal atomic representation of d.
func Atomics(d Dec) *big.Int {
	if d.IsNil() {
		return new(big.Int)
	}
	return d.BigInt()
}

// Parse parses a decimal string such as "0.05".
func Parse(s string) (Dec, error) {
	d, err := math.LegacyNewDecFromStr(s)
	if err != nil {
		return Dec{}, reverts.Newf(reverts.KindInvalid, "invalid decimal %q", s)
	}
	return d, nil
}

// Floor truncates d to an integer amount. The conversion is exact.
func Floor(d Dec) (*uint256.Int, error) {
	if d.IsNil() {
		return new(uint256.Int), nil
	}
	if d.IsNegative() {
		return nil, reverts.Newf(reverts.KindInvalid, "negative amount %s", d)
	}
	v, overflow := uint256.FromBig(new(big.Int).Quo(d.BigInt(), precisionMultiplier))
	if overflow {
		return nil, reverts.Overflow("floor")
	}
	return v, nil
}

func guard(op string, err *error) {
	if r := recover(); r != nil {
		*err = reverts.Overflow(op)
	}
}

// Add returns a + b.
func Add(a, b Dec) (result Dec, err error) {
	defer guard("decimal add", &err)
	return a.Add(b), nil
}

// Sub returns a - b, which must not be negative.
func Sub(a, b Dec) (result Dec, err error) {
	defer guard("decimal sub", &err)
	if a.LT(b) {
		return Dec{}, reverts.Overflow("decimal sub")
	}
	return a.Sub(b), nil
}

// Mul returns trunc(a * b).
func Mul(a, b Dec) (result Dec, err error) {
	defer guard("decimal mul", &err)
	return a.MulTruncate(b), nil
}

// Quo returns trunc(a / b). A zero divisor is reported as an overflow.
func Quo(a, b Dec) (result Dec, err error) {
	defer guard("decimal quo", &err)
	if b.IsZero() {
		return Dec{}, reverts.Overflow("decimal quo")
	}
	return a.QuoTruncate(b), nil
}

// AddUint256 returns a + b, failing on overflow.
func AddUint256(a, b *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, reverts.Overflow("add")
	}
	return sum, nil
}

// SubUint256 returns a - b, failing on underflow.
func SubUint256(a, b *uint256.Int) (*uint256.Int, error) {
	diff, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, reverts.Overflow("sub")
	}
	return diff, nil
}
