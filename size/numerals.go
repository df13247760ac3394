// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package size

import (
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/text/language"

	"github.com/optable/bytesize/errors"
	"github.com/optable/bytesize/unit"
)

type (
	// NumeralFormatter converts between canonical decimals and the notation
	// of a locale. A canonical decimal matches `-?[0-9]+(\.[0-9]+)?`: ASCII
	// digits, a '.' radix and an optional leading minus.
	NumeralFormatter interface {
		// FormatNumeral renders a canonical decimal in the locale notation.
		FormatNumeral(canonical string) string
		// ParseNumeral converts a locale numeral into a canonical decimal.
		ParseNumeral(text string) (string, error)
	}

	// MessageCatalog provides the long display name of a prefix, as it reads
	// after a numeral ("kibibytes"), for a given locale.
	MessageCatalog interface {
		PrefixDisplayName(p unit.Prefix, tag language.Tag) string
	}
)

var (
	// POSIX is the default NumeralFormatter: '.' radix, no digit grouping.
	POSIX NumeralFormatter = posixNumerals{}

	// EnglishNames is the default MessageCatalog, derived from the registry.
	EnglishNames MessageCatalog = englishNames{}
)

type posixNumerals struct{}

func (posixNumerals) FormatNumeral(canonical string) string {
	return canonical
}

func (posixNumerals) ParseNumeral(text string) (string, error) {
	return Canonicalize(strings.TrimSpace(text))
}

type englishNames struct{}

func (englishNames) PrefixDisplayName(p unit.Prefix, _ language.Tag) string {
	return p.Name + "s"
}

// Canonicalize validates a plain ASCII decimal with an optional sign and
// returns it in canonical form: no '+', no leading or trailing radix, at
// least one digit on each side of the radix.
func Canonicalize(text string) (string, error) {
	s := text
	negative := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	intPart, fracPart := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot+1:]
		if fracPart == "" && intPart == "" {
			return "", fmt.Errorf("no digits in %q", text)
		}
	} else if s == "" {
		return "", fmt.Errorf("no digits in %q", text)
	}

	for _, part := range []string{intPart, fracPart} {
		for i := 0; i < len(part); i++ {
			if part[i] < '0' || part[i] > '9' {
				return "", fmt.Errorf("unexpected character %q in %q", part[i], text)
			}
		}
	}

	if intPart == "" {
		intPart = "0"
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(intPart)
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String(), nil
}

// parseCanonical turns a canonical decimal into an exact rational without
// ever going through a binary floating point representation.
func parseCanonical(op, canonical string) (*big.Rat, error) {
	digits := canonical
	places := 0
	if dot := strings.IndexByte(canonical, '.'); dot >= 0 {
		places = len(canonical) - dot - 1
		digits = canonical[:dot] + canonical[dot+1:]
	}

	num, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, errors.Errorf(errors.ValueError, op, canonical, "not a canonical decimal")
	}
	return new(big.Rat).SetFrac(num, pow10(places)), nil
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
