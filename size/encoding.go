// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package size

import (
	"math/big"

	"github.com/optable/bytesize/errors"
)

// MarshalText writes the exact byte count in base 10. It never loses
// precision, unlike String.
func (s Size) MarshalText() ([]byte, error) {
	return s.int().MarshalText()
}

// UnmarshalText accepts anything Parse does with default options.
func (s *Size) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

const (
	signPositive byte = 0
	signNegative byte = 1
)

// MarshalBinary encodes a sign byte followed by the big-endian magnitude.
func (s Size) MarshalBinary() ([]byte, error) {
	n := s.int()
	sign := signPositive
	if n.Sign() < 0 {
		sign = signNegative
	}
	return append([]byte{sign}, n.Bytes()...), nil
}

func (s *Size) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return errors.Errorf(errors.ValueError, "unmarshal", "", "empty payload")
	}

	n := new(big.Int).SetBytes(data[1:])
	switch data[0] {
	case signPositive:
	case signNegative:
		n.Neg(n)
	default:
		return errors.Errorf(errors.ValueError, "unmarshal", "", "invalid sign byte %#x", data[0])
	}

	*s = Size{n}
	return nil
}
