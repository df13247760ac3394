// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package size

import (
	"math/big"
	"strings"

	"golang.org/x/text/language"

	"github.com/optable/bytesize/errors"
	"github.com/optable/bytesize/unit"
)

// Unlimited asks the formatter for as many places as the exact value needs.
const Unlimited = -1

// DefaultApproxSymbol marks inexact renderings when ShowApprox is set.
const DefaultApproxSymbol = "~"

// FormatConfig controls HumanReadable. Start from DefaultFormatConfig: the
// zero value renders no decimal places.
type FormatConfig struct {
	// MaxPlaces is the number of fractional digits, or Unlimited.
	MaxPlaces int `json:"max_places"`
	// StripTrailingZeros drops trailing fractional zeros and a bare radix.
	StripTrailingZeros bool `json:"strip_trailing_zeros,omitempty"`
	// Unit pins the display unit. When nil the unit is picked automatically.
	Unit *unit.Prefix `json:"unit,omitempty"`
	// Base restricts automatic selection to a family, binary when unset.
	Base unit.Base `json:"base,omitempty"`
	// LongName displays "kibibytes" instead of "KiB".
	LongName bool `json:"long_name,omitempty"`
	// Sign forces a '+' in front of non-negative sizes.
	Sign bool `json:"sign,omitempty"`
	// Rounding applies to the displayed digits only.
	Rounding RoundingMethod `json:"rounding,omitempty"`
	// MinValue is the smallest magnitude allowed in front of an automatically
	// selected unit above B. Defaults to 1.
	MinValue *big.Rat `json:"min_value,omitempty"`
	// ExactValue prefers a smaller unit when it renders the value exactly
	// within MaxPlaces.
	ExactValue bool `json:"exact_value,omitempty"`
	// ShowApprox prefixes inexact renderings with ApproxSymbol.
	ShowApprox   bool   `json:"show_approx,omitempty"`
	ApproxSymbol string `json:"approx_symbol,omitempty"`

	Locale   language.Tag     `json:"locale"`
	Numerals NumeralFormatter `json:"-"`
	Catalog  MessageCatalog   `json:"-"`
}

// DefaultFormatConfig returns two places, half-up rounding, POSIX numerals
// and English unit names. Base is left unset: automatic selection uses binary
// prefixes and a pinned Unit of either family is accepted.
func DefaultFormatConfig() FormatConfig {
	return FormatConfig{
		MaxPlaces:    2,
		Rounding:     RoundHalfUp,
		ApproxSymbol: DefaultApproxSymbol,
		Locale:       language.English,
		Numerals:     POSIX,
		Catalog:      EnglishNames,
	}
}

func (c FormatConfig) validate() error {
	if c.MaxPlaces < Unlimited {
		return errors.Errorf(errors.ValueError, "format", "", "max places must be non-negative or Unlimited, got %d", c.MaxPlaces)
	}
	if !c.Rounding.Valid() {
		return errors.NewSizeError(errors.ValueError, "format", c.Rounding.String(), nil)
	}
	if c.MinValue != nil && c.MinValue.Sign() < 0 {
		return errors.Errorf(errors.ValueError, "format", c.MinValue.RatString(), "min value must not be negative")
	}
	if !c.Base.Valid() {
		return errors.NewSizeError(errors.UnitError, "format", c.Base.String(), nil)
	}
	if c.Unit != nil {
		if !c.Unit.Valid() {
			return errors.NewSizeError(errors.UnitError, "format", c.Unit.String(), nil)
		}
		if c.Base != 0 && !c.Unit.InFamily(c.Base) {
			return errors.Errorf(errors.UnitError, "format", c.Unit.String(), "unit is not a %s prefix", c.Base)
		}
	}
	return nil
}

func (c FormatConfig) family() []unit.Prefix {
	if c.Base == 0 {
		return unit.Prefixes(unit.Binary)
	}
	return unit.Prefixes(c.Base)
}

// Components returns the exact value of s expressed in the unit the
// formatter would display it in.
func (s Size) Components(c FormatConfig) (*big.Rat, unit.Prefix, error) {
	if err := c.validate(); err != nil {
		return nil, unit.Prefix{}, err
	}
	value, prefix := s.components(c)
	return value, prefix, nil
}

func (s Size) components(c FormatConfig) (*big.Rat, unit.Prefix) {
	if c.Unit != nil {
		value, _ := s.ConvertTo(*c.Unit)
		return value, *c.Unit
	}

	min := c.MinValue
	if min == nil {
		min = big.NewRat(1, 1)
	}

	family := c.family()
	abs := new(big.Rat).SetInt(new(big.Int).Abs(s.int()))

	// Largest prefix keeping at least MinValue in front of it. Factors are
	// increasing, so the scan stops at the first prefix that does not.
	chosen := 0
	for i := 1; i < len(family); i++ {
		scaled := new(big.Rat).Quo(abs, new(big.Rat).SetInt(family[i].Factor()))
		if scaled.Cmp(min) < 0 {
			break
		}
		chosen = i
	}

	if c.ExactValue && c.MaxPlaces != Unlimited {
		for ; chosen > 0; chosen-- {
			value, _ := s.ConvertTo(family[chosen])
			if _, exact := roundScaled(value, c.MaxPlaces, c.Rounding); exact {
				break
			}
		}
	}

	value, _ := s.ConvertTo(family[chosen])
	return value, family[chosen]
}

// Format is a shorthand for HumanReadable(s, c).
func (s Size) Format(c FormatConfig) (string, error) {
	return HumanReadable(s, c)
}

// HumanReadable renders s as a numeral followed by a unit, e.g. "1.50 KiB".
// Rounding only affects the rendering, s is left untouched.
func HumanReadable(s Size, c FormatConfig) (string, error) {
	value, prefix, err := s.Components(c)
	if err != nil {
		return "", err
	}

	places := c.MaxPlaces
	if places == Unlimited {
		var ok bool
		if places, ok = exactPlaces(value); !ok {
			return "", errors.Errorf(errors.RoundingError, "format", value.RatString(), "no terminating decimal expansion")
		}
	}

	scaled, exact := roundScaled(value, places, c.Rounding)
	canonical := decimalString(scaled, places)
	if c.StripTrailingZeros {
		canonical = stripZeros(canonical)
	}

	numerals := c.Numerals
	if numerals == nil {
		numerals = POSIX
	}

	var b strings.Builder
	if c.ShowApprox && !exact {
		symbol := c.ApproxSymbol
		if symbol == "" {
			symbol = DefaultApproxSymbol
		}
		b.WriteString(symbol)
	}
	if c.Sign && s.Sign() >= 0 {
		b.WriteByte('+')
	}
	b.WriteString(numerals.FormatNumeral(canonical))
	b.WriteByte(' ')
	b.WriteString(c.unitName(prefix))
	return b.String(), nil
}

func (c FormatConfig) unitName(p unit.Prefix) string {
	if !c.LongName {
		return p.Symbol
	}
	catalog := c.Catalog
	if catalog == nil {
		catalog = EnglishNames
	}
	return catalog.PrefixDisplayName(p, c.Locale)
}
