// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package size

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/optable/bytesize/errors"
	"github.com/optable/bytesize/unit"
)

func format(t *testing.T, s Size, configure func(*FormatConfig)) string {
	c := DefaultFormatConfig()
	if configure != nil {
		configure(&c)
	}
	str, err := HumanReadable(s, c)
	require.NoError(t, err)
	return str
}

func TestHumanReadableDefaults(t *testing.T) {
	cases := []struct {
		size     Size
		expected string
	}{
		{Of(0, unit.B), "0.00 B"},
		{Of(1, unit.B), "1.00 B"},
		{Of(1023, unit.B), "1023.00 B"},
		{Of(1024, unit.B), "1.00 KiB"},
		{Of(1536, unit.B), "1.50 KiB"},
		{Of(-1536, unit.B), "-1.50 KiB"},
		{Of(1536, unit.MiB), "1.50 GiB"},
		{Of(2048, unit.YiB), "2048.00 YiB"},
		{Of(1, unit.KB), "1000.00 B"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, format(t, c.size, nil), c.size.GoString())
	}
}

func TestHumanReadableOptions(t *testing.T) {
	s := Of(1536, unit.B)

	assert.Equal(t, "1.54 kB", format(t, s, func(c *FormatConfig) { c.Base = unit.Decimal }))
	assert.Equal(t, "1.50 kibibytes", format(t, s, func(c *FormatConfig) { c.LongName = true }))
	assert.Equal(t, "+1.50 KiB", format(t, s, func(c *FormatConfig) { c.Sign = true }))
	assert.Equal(t, "+0.00 B", format(t, Size{}, func(c *FormatConfig) { c.Sign = true }))
	assert.Equal(t, "-1.50 KiB", format(t, s.Neg(), func(c *FormatConfig) { c.Sign = true }))
	assert.Equal(t, "0.00 KiB", format(t, Of(-1, unit.B), func(c *FormatConfig) {
		c.Sign = true
		c.Unit = &unit.KiB
	}))
	assert.Equal(t, "1.5 KiB", format(t, s, func(c *FormatConfig) { c.StripTrailingZeros = true }))
	assert.Equal(t, "2 KiB", format(t, Of(2, unit.KiB), func(c *FormatConfig) { c.StripTrailingZeros = true }))
	assert.Equal(t, "0.00 MiB", format(t, s, func(c *FormatConfig) { c.Unit = &unit.MiB }))
	assert.Equal(t, "1536.00 B", format(t, s, func(c *FormatConfig) { c.MinValue = big.NewRat(2, 1) }))
	assert.Equal(t, "1.50 KiB", format(t, s, func(c *FormatConfig) { c.ShowApprox = true }))
	assert.Equal(t, "2 KiB", format(t, s, func(c *FormatConfig) { c.MaxPlaces = 0 }))
}

func TestHumanReadableRounding(t *testing.T) {
	cases := []struct {
		method   RoundingMethod
		positive string
		negative string
	}{
		{RoundHalfUp, "1.13 KiB", "-1.13 KiB"},
		{RoundHalfDown, "1.12 KiB", "-1.12 KiB"},
		{RoundDown, "1.12 KiB", "-1.12 KiB"},
		{RoundUp, "1.13 KiB", "-1.13 KiB"},
	}

	// 1152 bytes is exactly 1.125 KiB, a tie at two places.
	s := Of(1152, unit.B)
	for _, c := range cases {
		configure := func(cfg *FormatConfig) { cfg.Rounding = c.method }
		assert.Equal(t, c.positive, format(t, s, configure), c.method.String())
		assert.Equal(t, c.negative, format(t, s.Neg(), configure), c.method.String())
	}

	assert.Equal(t, "~1.13 KiB", format(t, s, func(c *FormatConfig) { c.ShowApprox = true }))
	assert.Equal(t, "≈1.13 KiB", format(t, s, func(c *FormatConfig) {
		c.ShowApprox = true
		c.ApproxSymbol = "≈"
	}))
}

func TestHumanReadableUnlimited(t *testing.T) {
	unlimited := func(c *FormatConfig) { c.MaxPlaces = Unlimited }

	assert.Equal(t, "1.125 KiB", format(t, Of(1152, unit.B), unlimited))
	assert.Equal(t, "1.0009765625 KiB", format(t, Of(1025, unit.B), unlimited))
	assert.Equal(t, "1 KiB", format(t, Of(1, unit.KiB), unlimited))
	assert.Equal(t, "12 B", format(t, Of(12, unit.B), unlimited))
}

func TestHumanReadableExactValue(t *testing.T) {
	exact := func(c *FormatConfig) { c.ExactValue = true }

	assert.Equal(t, "1025.00 B", format(t, Of(1025, unit.B), exact))
	assert.Equal(t, "1.50 KiB", format(t, Of(1536, unit.B), exact))
	assert.Equal(t, "1.25 MiB", format(t, Of(1280, unit.KiB), exact))
	assert.Equal(t, "1025.00 KiB", format(t, Of(1025, unit.KiB), exact))
}

func TestHumanReadablePinnedUnitWithDefaults(t *testing.T) {
	c := DefaultFormatConfig()
	c.Unit = &unit.MB
	str, err := HumanReadable(Of(3, unit.MB), c)
	require.NoError(t, err)
	assert.Equal(t, "3.00 MB", str)

	c.Unit = &unit.GiB
	str, err = HumanReadable(Of(3, unit.GiB), c)
	require.NoError(t, err)
	assert.Equal(t, "3.00 GiB", str)

	c.Unit = &unit.MB
	c.Base = unit.Binary
	_, err = HumanReadable(Of(3, unit.MB), c)
	assert.ErrorIs(t, err, errors.UnitError)
}

func TestHumanReadableErrors(t *testing.T) {
	s := Of(1, unit.KiB)

	invalid := []struct {
		kind      errors.Kind
		configure func(*FormatConfig)
	}{
		{errors.UnitError, func(c *FormatConfig) {
			c.Unit = &unit.KiB
			c.Base = unit.Decimal
		}},
		{errors.UnitError, func(c *FormatConfig) { c.Base = unit.Base(3) }},
		{errors.UnitError, func(c *FormatConfig) { c.Unit = &unit.Prefix{Symbol: "QB", Exponent: 2} }},
		{errors.ValueError, func(c *FormatConfig) { c.MaxPlaces = -2 }},
		{errors.ValueError, func(c *FormatConfig) { c.Rounding = RoundingMethod(9) }},
		{errors.ValueError, func(c *FormatConfig) { c.MinValue = big.NewRat(-1, 2) }},
	}

	for i, c := range invalid {
		cfg := DefaultFormatConfig()
		c.configure(&cfg)
		_, err := HumanReadable(s, cfg)
		assert.ErrorIs(t, err, c.kind, "case %d", i)
		assert.ErrorIs(t, err, errors.ErrSize, "case %d", i)
	}
}

func TestZeroFormatConfig(t *testing.T) {
	str, err := Of(1536, unit.B).Format(FormatConfig{})
	require.NoError(t, err)
	assert.Equal(t, "2 KiB", str)

	str, err = Of(1536, unit.B).Format(FormatConfig{Unit: &unit.KB})
	require.NoError(t, err)
	assert.Equal(t, "2 kB", str)
}

type taggedNames struct{}

func (taggedNames) PrefixDisplayName(p unit.Prefix, tag language.Tag) string {
	return tag.String() + ":" + p.Symbol
}

func TestHumanReadableLocalized(t *testing.T) {
	str := format(t, Of(1536, unit.B), func(c *FormatConfig) {
		c.Numerals = commaNumerals{}
		c.Catalog = taggedNames{}
		c.Locale = language.French
		c.LongName = true
	})
	assert.Equal(t, "1,50 fr:KiB", str)

	// Symbols never go through the catalog.
	str = format(t, Of(1536, unit.B), func(c *FormatConfig) { c.Catalog = taggedNames{} })
	assert.Equal(t, "1.50 KiB", str)
}

func TestComponents(t *testing.T) {
	value, prefix, err := Of(1536, unit.B).Components(DefaultFormatConfig())
	require.NoError(t, err)
	assert.Equal(t, "3/2", value.RatString())
	assert.Equal(t, unit.KiB, prefix)

	value, prefix, err = Of(-3, unit.TB).Components(FormatConfig{Base: unit.Decimal})
	require.NoError(t, err)
	assert.Equal(t, "-3", value.RatString())
	assert.Equal(t, unit.TB, prefix)

	_, _, err = Size{}.Components(FormatConfig{Base: unit.Base(7)})
	assert.ErrorIs(t, err, errors.UnitError)
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, s := range randomSizes(25) {
		for _, p := range unit.All() {
			p := p
			str := format(t, s, func(c *FormatConfig) {
				c.Unit = &p
				c.MaxPlaces = Unlimited
			})
			parsed, err := Parse(str)
			if assert.NoError(t, err, str) {
				assert.True(t, parsed.Equal(s), "%s != %s", str, s.GoString())
			}
		}

		str := format(t, s, func(c *FormatConfig) { c.MaxPlaces = Unlimited })
		parsed, err := Parse(str)
		require.NoError(t, err, str)
		assert.True(t, parsed.Equal(s), str)
	}
}

func TestFormatConfigJSON(t *testing.T) {
	c := DefaultFormatConfig()
	c.Unit = &unit.MiB
	c.Rounding = RoundDown
	c.MinValue = big.NewRat(3, 2)
	c.Locale = language.German

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded FormatConfig
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, c.MaxPlaces, decoded.MaxPlaces)
	assert.Equal(t, c.Unit, decoded.Unit)
	assert.Equal(t, c.Base, decoded.Base)
	assert.Equal(t, c.Rounding, decoded.Rounding)
	assert.Equal(t, "3/2", decoded.MinValue.RatString())
	assert.Equal(t, "de", decoded.Locale.String())
	assert.Nil(t, decoded.Numerals)

	err = json.Unmarshal([]byte(`{"unit":"XiB"}`), &decoded)
	assert.ErrorIs(t, err, errors.UnitError)
}
