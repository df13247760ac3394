// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package size

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/optable/bytesize/errors"
)

// RoundingMethod selects how a rational is rounded. Construction and division
// always truncate toward zero and ignore it.
//
// Display rounding is symmetric around zero: down means toward zero, up means
// away from it. RoundTo works on the number line instead: down is the floor,
// up is the ceiling and half-up ties go toward +Inf, so that -1.5 KiB rounds
// half-up to -1 KiB.
type RoundingMethod uint8

const (
	// RoundHalfUp rounds to nearest, ties up. It is the default.
	RoundHalfUp RoundingMethod = iota
	// RoundHalfDown rounds to nearest, ties down.
	RoundHalfDown
	// RoundDown rounds down.
	RoundDown
	// RoundUp rounds up.
	RoundUp
)

var roundingNames = []string{"half-up", "half-down", "down", "up"}

func (m RoundingMethod) Valid() bool {
	return int(m) < len(roundingNames)
}

func (m RoundingMethod) String() string {
	if !m.Valid() {
		return fmt.Sprintf("RoundingMethod(%d)", uint8(m))
	}
	return roundingNames[m]
}

// ParseRoundingMethod is the inverse of String.
func ParseRoundingMethod(s string) (RoundingMethod, error) {
	for i, name := range roundingNames {
		if strings.EqualFold(s, name) {
			return RoundingMethod(i), nil
		}
	}
	return 0, errors.NewSizeError(errors.ValueError, "parse rounding method", s, nil)
}

func (m RoundingMethod) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, errors.NewSizeError(errors.ValueError, "marshal rounding method", m.String(), nil)
	}
	return []byte(m.String()), nil
}

func (m *RoundingMethod) UnmarshalText(text []byte) error {
	method, err := ParseRoundingMethod(string(text))
	if err != nil {
		return err
	}
	*m = method
	return nil
}

// roundScaled rounds r to the given number of decimal places and returns the
// result scaled by 10^places, along with whether no rounding was needed.
func roundScaled(r *big.Rat, places int, m RoundingMethod) (*big.Int, bool) {
	num := new(big.Int).Mul(r.Num(), pow10(places))
	den := r.Denom()

	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() == 0 {
		return q, true
	}

	var away bool
	switch m {
	case RoundUp:
		away = true
	case RoundDown:
		away = false
	default:
		twice := new(big.Int).Abs(rem)
		twice.Lsh(twice, 1)
		switch twice.Cmp(den) {
		case 1:
			away = true
		case 0:
			away = m == RoundHalfUp
		}
	}

	if away {
		if num.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return q, false
}

// roundFloor rounds r to an integer on the number line, starting from the
// floor of r.
func roundFloor(r *big.Rat, m RoundingMethod) *big.Int {
	den := r.Denom()
	q, rem := new(big.Int).DivMod(r.Num(), den, new(big.Int))
	if rem.Sign() == 0 {
		return q
	}

	var up bool
	switch m {
	case RoundUp:
		up = true
	case RoundDown:
		up = false
	default:
		switch new(big.Int).Lsh(rem, 1).Cmp(den) {
		case 1:
			up = true
		case 0:
			up = m == RoundHalfUp
		}
	}

	if up {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// maxExactPlaces bounds the search for a terminating expansion. A value
// converted to any registry prefix terminates in at most 80 places (YiB).
const maxExactPlaces = 256

// exactPlaces returns the number of places needed to write r exactly, or
// false if the expansion does not terminate within maxExactPlaces.
func exactPlaces(r *big.Rat) (int, bool) {
	den := r.Denom()
	num := new(big.Int).Abs(r.Num())
	rem := new(big.Int)
	for places := 0; places <= maxExactPlaces; places++ {
		if rem.Rem(num, den).Sign() == 0 {
			return places, true
		}
		num.Mul(num, big.NewInt(10))
	}
	return 0, false
}

// decimalString writes scaled / 10^places as a canonical decimal.
func decimalString(scaled *big.Int, places int) string {
	digits := new(big.Int).Abs(scaled).String()
	if places > 0 && len(digits) <= places {
		digits = strings.Repeat("0", places-len(digits)+1) + digits
	}

	var b strings.Builder
	if scaled.Sign() < 0 {
		b.WriteByte('-')
	}
	if places == 0 {
		b.WriteString(digits)
		return b.String()
	}
	b.WriteString(digits[:len(digits)-places])
	b.WriteByte('.')
	b.WriteString(digits[len(digits)-places:])
	return b.String()
}

// stripZeros drops trailing fractional zeros and a bare trailing radix.
func stripZeros(canonical string) string {
	if !strings.Contains(canonical, ".") {
		return canonical
	}
	return strings.TrimSuffix(strings.TrimRight(canonical, "0"), ".")
}
