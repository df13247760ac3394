// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.

// Package size implements Size, an exact quantity of bytes backed by an
// arbitrary-precision integer, together with its parser and formatter.
//
// A Size always holds a whole number of bytes. Every operation that could
// produce a fractional byte count (construction from a decimal, scaling by a
// rational, division) truncates toward zero. Floating point numbers are never
// accepted as input.
//
//	s, err := size.Parse("1.5 GiB")
//	half, err := s.Div(size.Int(2))
//	fmt.Println(half) // 768.00 MiB
package size

import (
	"fmt"
	"math/big"

	"github.com/optable/bytesize/errors"
	"github.com/optable/bytesize/unit"
)

// Size is an immutable number of bytes. The zero value is 0 bytes. Sizes are
// safe to copy and to share between goroutines.
type Size struct {
	// n is never mutated once a Size is built. nil means 0.
	n *big.Int
}

var zero = new(big.Int)

func (s Size) int() *big.Int {
	if s.n == nil {
		return zero
	}
	return s.n
}

// New constructs a Size from an exact value expressed in an optional unit
// prefix (bytes by default). Fractional byte counts are truncated toward
// zero. A Size value must not be combined with a prefix.
func New(v Value, p ...unit.Prefix) (Size, error) {
	if len(p) > 1 {
		return Size{}, errors.Errorf(errors.UnitError, "new", v.String(), "expected at most one unit, got %d", len(p))
	}

	prefix := unit.B
	if len(p) == 1 {
		prefix = p[0]
		if !prefix.Valid() {
			return Size{}, errors.NewSizeError(errors.UnitError, "new", prefix.String(), nil)
		}
	}

	switch v.kind {
	case quantityValue:
		if len(p) != 0 {
			return Size{}, errors.Errorf(errors.UnitError, "new", prefix.String(), "unit is meaningless when the value is already a Size")
		}
		return v.size, nil
	case numeralValue:
		return Parse(v.numeral, WithDefaultUnit(prefix))
	}

	r, err := v.scalar("new")
	if err != nil {
		return Size{}, err
	}
	return fromRat(r.Mul(r, new(big.Rat).SetInt(prefix.Factor()))), nil
}

// Of is a shorthand for n units of p. It cannot fail for registry prefixes.
func Of(n int64, p unit.Prefix) Size {
	return Size{new(big.Int).Mul(big.NewInt(n), p.Factor())}
}

// FromBigInt builds a Size of n bytes. n is copied.
func FromBigInt(n *big.Int) Size {
	if n == nil {
		return Size{}
	}
	return Size{new(big.Int).Set(n)}
}

// fromRat truncates r toward zero.
func fromRat(r *big.Rat) Size {
	return Size{new(big.Int).Quo(r.Num(), r.Denom())}
}

// Bytes returns a copy of the byte count.
func (s Size) Bytes() *big.Int {
	return new(big.Int).Set(s.int())
}

// Int64 returns the byte count if it fits in an int64.
func (s Size) Int64() (int64, bool) {
	n := s.int()
	if !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

func (s Size) Sign() int {
	return s.int().Sign()
}

func (s Size) IsZero() bool {
	return s.Sign() == 0
}

// Cmp compares byte counts and returns -1, 0 or +1.
func (s Size) Cmp(o Size) int {
	return s.int().Cmp(o.int())
}

func (s Size) Equal(o Size) bool {
	return s.Cmp(o) == 0
}

func (s Size) Less(o Size) bool {
	return s.Cmp(o) < 0
}

func (s Size) Add(o Size) Size {
	return Size{new(big.Int).Add(s.int(), o.int())}
}

func (s Size) Sub(o Size) Size {
	return Size{new(big.Int).Sub(s.int(), o.int())}
}

func (s Size) Neg() Size {
	return Size{new(big.Int).Neg(s.int())}
}

func (s Size) Abs() Size {
	return Size{new(big.Int).Abs(s.int())}
}

// MulInt64 scales the size by an integer, which is always exact.
func (s Size) MulInt64(n int64) Size {
	return Size{new(big.Int).Mul(s.int(), big.NewInt(n))}
}

// Mul scales the size by an exact scalar, truncating fractional bytes toward
// zero. Multiplying a Size by a Size fails with a DimensionalityError.
func (s Size) Mul(v Value) (Size, error) {
	if v.IsQuantity() {
		return Size{}, errors.Errorf(errors.DimensionalityError, "mul", v.String(), "bytes squared cannot be represented")
	}
	r, err := v.scalar("mul")
	if err != nil {
		return Size{}, err
	}
	return fromRat(r.Mul(r, new(big.Rat).SetInt(s.int()))), nil
}

// Div divides the size by an exact non-zero scalar, truncating fractional
// bytes toward zero. Use Ratio to divide by another Size.
func (s Size) Div(v Value) (Size, error) {
	q, err := s.quo("div", v)
	if err != nil {
		return Size{}, err
	}
	return fromRat(q), nil
}

// DivExact is like Div but fails with a RoundingError when the quotient is
// not a whole number of bytes.
func (s Size) DivExact(v Value) (Size, error) {
	q, err := s.quo("div exact", v)
	if err != nil {
		return Size{}, err
	}
	if !q.IsInt() {
		return Size{}, errors.Errorf(errors.RoundingError, "div exact", v.String(), "%s bytes is not a whole number of bytes", q.RatString())
	}
	return Size{new(big.Int).Set(q.Num())}, nil
}

func (s Size) quo(op string, v Value) (*big.Rat, error) {
	if v.IsQuantity() {
		return nil, errors.Errorf(errors.ValueError, op, v.String(), "dividing by a Size yields a ratio, use Ratio")
	}
	r, err := v.scalar(op)
	if err != nil {
		return nil, err
	}
	if r.Sign() == 0 {
		return nil, errors.Errorf(errors.ValueError, op, v.String(), "division by zero")
	}
	return r.Quo(new(big.Rat).SetInt(s.int()), r), nil
}

// Ratio returns the exact dimensionless quotient s / o.
func (s Size) Ratio(o Size) (*big.Rat, error) {
	if o.IsZero() {
		return nil, errors.Errorf(errors.ValueError, "ratio", o.GoString(), "division by zero")
	}
	return new(big.Rat).SetFrac(s.int(), o.int()), nil
}

// QuoRem returns the truncated quotient and the remainder of s / o such that
// s = q*o + r and r has the sign of s.
func (s Size) QuoRem(o Size) (*big.Int, Size, error) {
	if o.IsZero() {
		return nil, Size{}, errors.Errorf(errors.ValueError, "quorem", o.GoString(), "division by zero")
	}
	q, r := new(big.Int).QuoRem(s.int(), o.int(), new(big.Int))
	return q, Size{r}, nil
}

// Rem returns the remainder of the truncated division s / o.
func (s Size) Rem(o Size) (Size, error) {
	_, r, err := s.QuoRem(o)
	return r, err
}

// Pow always fails: a Size raised to any power is not a number of bytes.
func (s Size) Pow(exponent Value) (Size, error) {
	return Size{}, errors.Errorf(errors.PowerResultError, "pow", exponent.String(), "%s cannot be raised to a power", s.GoString())
}

// PowOf always fails: a Size is not a meaningful exponent.
func PowOf(base Value, exponent Size) (*big.Rat, error) {
	return nil, errors.Errorf(errors.PowerResultError, "pow", base.String(), "%s cannot be used as an exponent", exponent.GoString())
}

// ConvertTo expresses the size in units of p, exactly.
func (s Size) ConvertTo(p unit.Prefix) (*big.Rat, error) {
	if !p.Valid() {
		return nil, errors.NewSizeError(errors.UnitError, "convert", p.String(), nil)
	}
	return new(big.Rat).SetFrac(s.int(), p.Factor()), nil
}

// RoundTo rounds the size to a whole number of units of p. Negative sizes
// round on the number line, see RoundingMethod.
func (s Size) RoundTo(p unit.Prefix, m RoundingMethod) (Size, error) {
	if !m.Valid() {
		return Size{}, errors.NewSizeError(errors.ValueError, "round", m.String(), nil)
	}
	r, err := s.ConvertTo(p)
	if err != nil {
		return Size{}, err
	}
	units := roundFloor(r, m)
	return Size{units.Mul(units, p.Factor())}, nil
}

// String renders the size with DefaultFormatConfig, e.g. "1.50 KiB".
func (s Size) String() string {
	str, err := s.Format(DefaultFormatConfig())
	if err != nil {
		return s.int().String() + " B"
	}
	return str
}

// GoString renders the exact byte count, e.g. "size.Size(1536)".
func (s Size) GoString() string {
	return fmt.Sprintf("size.Size(%s)", s.int())
}
