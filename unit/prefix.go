// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package unit

import (
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/text/cases"

	"github.com/optable/bytesize/errors"
)

// Base identifies a family of prefixes. The zero value means "unspecified"
// and lets callers fall back to their own default.
type Base uint8

const (
	// Binary (IEC) prefixes are powers of 2: KiB, MiB, ...
	Binary Base = 2
	// Decimal (SI) prefixes are powers of 10: kB, MB, ...
	Decimal Base = 10
)

func (b Base) String() string {
	switch b {
	case Binary:
		return "binary"
	case Decimal:
		return "decimal"
	case 0:
		return ""
	default:
		return fmt.Sprintf("Base(%d)", uint8(b))
	}
}

// Valid reports whether b is unspecified or one of the known families.
func (b Base) Valid() bool {
	return b == 0 || b == Binary || b == Decimal
}

// ParseBase accepts the names produced by String as well as the usual
// aliases ("iec", "si", "2", "10").
func ParseBase(s string) (Base, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case "binary", "iec", "2":
		return Binary, nil
	case "decimal", "si", "10":
		return Decimal, nil
	}
	return 0, errors.NewSizeError(errors.UnitError, "parse base", s, nil)
}

func (b Base) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, errors.NewSizeError(errors.UnitError, "marshal base", b.String(), nil)
	}
	return []byte(b.String()), nil
}

func (b *Base) UnmarshalText(text []byte) error {
	base, err := ParseBase(string(text))
	if err != nil {
		return err
	}
	*b = base
	return nil
}

// Prefix is a named byte multiple whose factor is Base^Exponent. The bare
// byte has exponent 0 and belongs to every family.
type Prefix struct {
	Name     string
	Symbol   string
	Base     Base
	Exponent uint
}

// Factor returns the exact number of bytes in one unit of the prefix. The
// returned integer is owned by the caller.
func (p Prefix) Factor() *big.Int {
	if p.Exponent == 0 {
		return big.NewInt(1)
	}
	return new(big.Int).Exp(big.NewInt(int64(p.Base)), big.NewInt(int64(p.Exponent)), nil)
}

// Abbr is the symbol without the trailing "B", e.g. "Ki" for KiB.
func (p Prefix) Abbr() string {
	return strings.TrimSuffix(p.Symbol, "B")
}

// Valid reports whether the prefix denotes a positive byte multiple of a
// known family.
func (p Prefix) Valid() bool {
	return p.Exponent == 0 || p.Base == Binary || p.Base == Decimal
}

// InFamily reports whether the prefix may be used with the given base.
func (p Prefix) InFamily(base Base) bool {
	return p.Exponent == 0 || p.Base == base
}

func (p Prefix) String() string {
	return p.Symbol
}

func (p Prefix) MarshalText() ([]byte, error) {
	return []byte(p.Symbol), nil
}

func (p *Prefix) UnmarshalText(text []byte) error {
	prefix, err := Lookup(string(text))
	if err != nil {
		return err
	}
	*p = prefix
	return nil
}

var (
	B = Prefix{Name: "byte", Symbol: "B"}

	KB = Prefix{Name: "kilobyte", Symbol: "kB", Base: Decimal, Exponent: 3}
	MB = Prefix{Name: "megabyte", Symbol: "MB", Base: Decimal, Exponent: 6}
	GB = Prefix{Name: "gigabyte", Symbol: "GB", Base: Decimal, Exponent: 9}
	TB = Prefix{Name: "terabyte", Symbol: "TB", Base: Decimal, Exponent: 12}
	PB = Prefix{Name: "petabyte", Symbol: "PB", Base: Decimal, Exponent: 15}
	EB = Prefix{Name: "exabyte", Symbol: "EB", Base: Decimal, Exponent: 18}
	ZB = Prefix{Name: "zettabyte", Symbol: "ZB", Base: Decimal, Exponent: 21}
	YB = Prefix{Name: "yottabyte", Symbol: "YB", Base: Decimal, Exponent: 24}

	KiB = Prefix{Name: "kibibyte", Symbol: "KiB", Base: Binary, Exponent: 10}
	MiB = Prefix{Name: "mebibyte", Symbol: "MiB", Base: Binary, Exponent: 20}
	GiB = Prefix{Name: "gibibyte", Symbol: "GiB", Base: Binary, Exponent: 30}
	TiB = Prefix{Name: "tebibyte", Symbol: "TiB", Base: Binary, Exponent: 40}
	PiB = Prefix{Name: "pebibyte", Symbol: "PiB", Base: Binary, Exponent: 50}
	EiB = Prefix{Name: "exbibyte", Symbol: "EiB", Base: Binary, Exponent: 60}
	ZiB = Prefix{Name: "zebibyte", Symbol: "ZiB", Base: Binary, Exponent: 70}
	YiB = Prefix{Name: "yobibyte", Symbol: "YiB", Base: Binary, Exponent: 80}
)

var (
	decimalPrefixes = []Prefix{B, KB, MB, GB, TB, PB, EB, ZB, YB}
	binaryPrefixes  = []Prefix{B, KiB, MiB, GiB, TiB, PiB, EiB, ZiB, YiB}

	// index maps every accepted spelling, case folded, to its prefix.
	index = buildIndex()
)

func buildIndex() map[string]Prefix {
	idx := make(map[string]Prefix)
	for _, p := range All() {
		for _, key := range []string{p.Symbol, p.Abbr(), p.Name, p.Name + "s"} {
			if key == "" {
				continue
			}
			idx[fold(key)] = p
		}
	}
	return idx
}

// fold creates a new Caser per call, they are not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Prefixes returns the prefixes of a family by increasing exponent, starting
// with B. It returns nil for an unknown base.
func Prefixes(base Base) []Prefix {
	var family []Prefix
	switch base {
	case Binary:
		family = binaryPrefixes
	case Decimal:
		family = decimalPrefixes
	default:
		return nil
	}

	prefixes := make([]Prefix, len(family))
	copy(prefixes, family)
	return prefixes
}

// All returns every known prefix: B, then the binary family, then the decimal
// family.
func All() []Prefix {
	all := make([]Prefix, 0, len(binaryPrefixes)+len(decimalPrefixes)-1)
	all = append(all, binaryPrefixes...)
	return append(all, decimalPrefixes[1:]...)
}

// Lookup finds a prefix by symbol ("KiB", "kB"), abbreviation ("Ki", "k"),
// name ("kibibyte") or plural name ("kibibytes"). Matching is case
// insensitive.
func Lookup(nameOrSymbol string) (Prefix, error) {
	key := strings.TrimSpace(nameOrSymbol)
	if p, ok := index[fold(key)]; ok && key != "" {
		return p, nil
	}
	return Prefix{}, errors.NewSizeError(errors.UnitError, "lookup", nameOrSymbol, nil)
}

// MustLookup is like Lookup but panics on unknown prefixes. It is meant for
// package level variables and tests.
func MustLookup(nameOrSymbol string) Prefix {
	p, err := Lookup(nameOrSymbol)
	if err != nil {
		panic(err)
	}
	return p
}
