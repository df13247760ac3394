// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package size

import (
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/optable/bytesize/errors"
	"github.com/optable/bytesize/unit"
)

// Parser converts text such as "1.5 KiB" or, with a German NumeralFormatter,
// "1.536,5 kB" into a Size. A Parser is immutable and safe for concurrent
// use.
type Parser struct {
	defaultUnit unit.Prefix
	numerals    NumeralFormatter
}

// ParseOption configures a Parser.
type ParseOption func(*Parser)

// WithDefaultUnit sets the unit applied to numerals without a unit token.
func WithDefaultUnit(p unit.Prefix) ParseOption {
	return func(parser *Parser) {
		parser.defaultUnit = p
	}
}

// WithNumerals sets the locale numeral notation. The default is POSIX.
func WithNumerals(n NumeralFormatter) ParseOption {
	return func(parser *Parser) {
		if n != nil {
			parser.numerals = n
		}
	}
}

// NewParser creates a Parser defaulting to bytes and POSIX numerals.
func NewParser(opts ...ParseOption) *Parser {
	p := &Parser{defaultUnit: unit.B, numerals: POSIX}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is a shorthand for NewParser(opts...).Parse(text).
func Parse(text string, opts ...ParseOption) (Size, error) {
	return NewParser(opts...).Parse(text)
}

// MustParse is like Parse but panics on error. It simplifies the
// initialization of package level variables and tests.
func MustParse(text string, opts ...ParseOption) Size {
	s, err := Parse(text, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse reads an optionally signed locale numeral followed by an optional
// unit token. The numeral is converted to an exact rational, multiplied by
// the unit factor and only then truncated toward zero.
func (p *Parser) Parse(text string) (Size, error) {
	numeral, token := splitUnit(strings.TrimSpace(text))
	if numeral == "" {
		return Size{}, errors.Errorf(errors.ValueError, "parse", text, "missing numeral")
	}

	prefix := p.defaultUnit
	if token != "" {
		var err error
		if prefix, err = unit.Lookup(token); err != nil {
			return Size{}, err
		}
	}
	if !prefix.Valid() {
		return Size{}, errors.NewSizeError(errors.UnitError, "parse", prefix.String(), nil)
	}

	canonical, err := p.numerals.ParseNumeral(numeral)
	if err != nil {
		return Size{}, errors.NewSizeError(errors.ValueError, "parse", text, err)
	}
	r, err := parseCanonical("parse", canonical)
	if err != nil {
		return Size{}, err
	}

	return fromRat(r.Mul(r, new(big.Rat).SetInt(prefix.Factor()))), nil
}

// splitUnit separates the trailing run of letters from the numeral. Digits
// of every script are not letters, so localized numerals stay intact.
func splitUnit(text string) (numeral, token string) {
	cut := strings.LastIndexFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	end := 0
	if cut >= 0 {
		_, width := utf8.DecodeRuneInString(text[cut:])
		end = cut + width
	}
	numeral, token = text[:end], text[end:]
	return strings.TrimRightFunc(numeral, unicode.IsSpace), token
}
