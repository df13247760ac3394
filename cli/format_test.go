// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/optable/bytesize/size"
	"github.com/optable/bytesize/unit"
)

func TestLoadProfile(t *testing.T) {
	configDir := requireConfigDir(t)

	profile, err := LoadProfile(configDir, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), profile)

	_, err = LoadProfile(configDir, "missing")
	assert.Error(t, err)

	german := DefaultProfile()
	german.Format.Locale = language.German
	german.Format.LongName = true
	require.NoError(t, configDir.Set("german", german))
	require.NoError(t, configDir.Use("german"))

	profile, err = LoadProfile(configDir, "")
	require.NoError(t, err)

	str, err := size.Of(1536, unit.B).Format(profile.FormatConfig())
	require.NoError(t, err)
	assert.Equal(t, "1,50 Kibibyte", str)

	s, err := profile.Parser().Parse("1.024,5 KiB")
	require.NoError(t, err)
	assert.Equal(t, "1049088", s.Bytes().String())
}

func TestProfileParserDefaultUnit(t *testing.T) {
	profile := DefaultProfile()
	profile.DefaultUnit = &unit.MB

	s, err := profile.Parser().Parse("1.5")
	require.NoError(t, err)
	assert.Equal(t, "1500000", s.Bytes().String())
}

func TestFormatFlagsApply(t *testing.T) {
	flags := FormatFlags{
		Places:   "unlimited",
		Strip:    true,
		Unit:     "kB",
		Rounding: "down",
		MinValue: "0.5",
		Locale:   "de-CH",
	}

	c := size.DefaultFormatConfig()
	require.NoError(t, flags.Apply(&c))
	assert.Equal(t, size.Unlimited, c.MaxPlaces)
	assert.True(t, c.StripTrailingZeros)
	assert.Equal(t, &unit.KB, c.Unit)
	assert.Equal(t, size.RoundDown, c.Rounding)
	assert.Equal(t, "1/2", c.MinValue.RatString())
	assert.Equal(t, "de-CH", c.Locale.String())

	// Unset flags keep the profile values.
	c = size.DefaultFormatConfig()
	c.LongName = true
	require.NoError(t, (&FormatFlags{}).Apply(&c))
	assert.Equal(t, 2, c.MaxPlaces)
	assert.True(t, c.LongName)
	assert.Nil(t, c.Unit)

	c = size.DefaultFormatConfig()
	require.NoError(t, (&FormatFlags{Places: "0", Base: "si"}).Apply(&c))
	assert.Equal(t, 0, c.MaxPlaces)
	assert.Equal(t, unit.Decimal, c.Base)
}

func TestFormatFlagsErrors(t *testing.T) {
	invalid := []FormatFlags{
		{Places: "-1"},
		{Places: "many"},
		{Unit: "XB"},
		{Base: "ternary"},
		{Rounding: "sideways"},
		{MinValue: "1/2"},
		{Locale: "not a tag"},
	}

	for _, flags := range invalid {
		c := size.DefaultFormatConfig()
		assert.Error(t, flags.Apply(&c), "%+v", flags)
	}
}
