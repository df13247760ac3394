// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package size

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/optable/bytesize/errors"
)

type valueKind uint8

const (
	invalidValue valueKind = iota
	intValue
	ratValue
	numeralValue
	quantityValue
)

// Value is an exact operand accepted by constructors and arithmetic: an
// integer, a rational, a numeral string or a Size. The zero Value is invalid
// and rejected everywhere. Floating point values are deliberately not
// representable, see FromAny.
type Value struct {
	kind    valueKind
	i       *big.Int
	r       *big.Rat
	numeral string
	size    Size
}

// Int wraps an int64.
func Int(n int64) Value {
	return Value{kind: intValue, i: big.NewInt(n)}
}

// BigInt wraps a copy of n.
func BigInt(n *big.Int) Value {
	if n == nil {
		return Value{}
	}
	return Value{kind: intValue, i: new(big.Int).Set(n)}
}

// Rat wraps a copy of r.
func Rat(r *big.Rat) Value {
	if r == nil {
		return Value{}
	}
	return Value{kind: ratValue, r: new(big.Rat).Set(r)}
}

// Numeral wraps a decimal string such as "1.5". When used to construct a
// Size, the numeral may carry a unit ("1.5 KiB") and goes through Parse.
func Numeral(s string) Value {
	return Value{kind: numeralValue, numeral: s}
}

// Quantity wraps a Size.
func Quantity(s Size) Value {
	return Value{kind: quantityValue, size: s}
}

// IsQuantity reports whether the value holds a Size.
func (v Value) IsQuantity() bool {
	return v.kind == quantityValue
}

func (v Value) String() string {
	switch v.kind {
	case intValue:
		return v.i.String()
	case ratValue:
		return v.r.RatString()
	case numeralValue:
		return v.numeral
	case quantityValue:
		return v.size.GoString()
	default:
		return "<invalid>"
	}
}

// FromAny converts a Go value into a Value. It accepts every integer kind,
// *big.Int, *big.Rat, string, json.Number, Size and Value. Floating point
// numbers are rejected with a ValueError: they cannot represent most decimal
// fractions exactly, so the caller must convert them to a rational or a
// numeral string first.
func FromAny(x interface{}) (Value, error) {
	switch x := x.(type) {
	case Value:
		return x, nil
	case Size:
		return Quantity(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return BigInt(new(big.Int).SetUint64(uint64(x))), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return BigInt(new(big.Int).SetUint64(x)), nil
	case *big.Int:
		if x == nil {
			break
		}
		return BigInt(x), nil
	case *big.Rat:
		if x == nil {
			break
		}
		return Rat(x), nil
	case string:
		return Numeral(x), nil
	case json.Number:
		return Numeral(x.String()), nil
	case float32, float64:
		return Value{}, errors.Errorf(errors.ValueError, "convert", fmt.Sprint(x), "imprecise input type %T", x)
	}
	return Value{}, errors.Errorf(errors.ValueError, "convert", fmt.Sprint(x), "unsupported input type %T", x)
}

// scalar returns the value as an exact rational. Sizes and invalid values
// are rejected; numerals must be plain POSIX decimals without a unit.
func (v Value) scalar(op string) (*big.Rat, error) {
	switch v.kind {
	case intValue:
		return new(big.Rat).SetInt(v.i), nil
	case ratValue:
		return new(big.Rat).Set(v.r), nil
	case numeralValue:
		canonical, err := POSIX.ParseNumeral(v.numeral)
		if err != nil {
			return nil, errors.NewSizeError(errors.ValueError, op, v.numeral, err)
		}
		return parseCanonical(op, canonical)
	case quantityValue:
		return nil, errors.Errorf(errors.ValueError, op, v.String(), "expected a scalar, got a Size")
	}
	return nil, errors.NewSizeError(errors.ValueError, op, v.String(), nil)
}
