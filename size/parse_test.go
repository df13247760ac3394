// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package size

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optable/bytesize/errors"
	"github.com/optable/bytesize/unit"
)

func TestParse(t *testing.T) {
	cases := map[string]string{
		"1024":        "1024",
		"0.0":         "0",
		"1 KiB":       "1024",
		"1KiB":        "1024",
		"1.5 GiB":     "1610612736",
		"12.68 TiB":   "13941807440199",
		"26.55 MiB":   "27839692",
		"  -2 kB ":    "-2000",
		"+5 B":        "5",
		".5 KiB":      "512",
		"5. KB":       "5000",
		"1.9":         "1",
		"-1.9":        "-1",
		"3 kibibytes": "3072",
		"1 yobibyte":  "1208925819614629174706176",
		"2\tMB":       "2000000",
	}

	for input, expected := range cases {
		s, err := Parse(input)
		if assert.NoError(t, err, input) {
			assert.Equal(t, expected, s.Bytes().String(), input)
		}
	}
}

func TestParseErrors(t *testing.T) {
	valueErrors := []string{"", "   ", "KiB", "1.1.1", "1,000", "1 000", "--1", "1-", ". KiB", "0x10", "1e5"}
	for _, input := range valueErrors {
		_, err := Parse(input)
		assert.ErrorIs(t, err, errors.ValueError, input)
		assert.ErrorIs(t, err, errors.ErrSize, input)
	}

	unitErrors := []string{"1 XB", "1 q", "12 kibis", "1 KiBB"}
	for _, input := range unitErrors {
		_, err := Parse(input)
		assert.ErrorIs(t, err, errors.UnitError, input)
	}
}

func TestParseDefaultUnit(t *testing.T) {
	s, err := Parse("2", WithDefaultUnit(unit.MiB))
	require.NoError(t, err)
	assertBytes(t, "2097152", s)

	// An explicit unit wins over the default.
	s, err = Parse("2 B", WithDefaultUnit(unit.MiB))
	require.NoError(t, err)
	assertBytes(t, "2", s)

	_, err = Parse("2", WithDefaultUnit(unit.Prefix{Exponent: 2}))
	assert.ErrorIs(t, err, errors.UnitError)
}

// commaNumerals mimics a locale using ',' as radix and '.' for grouping.
type commaNumerals struct{}

func (commaNumerals) FormatNumeral(canonical string) string {
	return strings.Replace(canonical, ".", ",", 1)
}

func (commaNumerals) ParseNumeral(text string) (string, error) {
	return Canonicalize(strings.Replace(strings.ReplaceAll(text, ".", ""), ",", ".", 1))
}

func TestParseWithNumerals(t *testing.T) {
	parser := NewParser(WithNumerals(commaNumerals{}), WithDefaultUnit(unit.KB))

	s, err := parser.Parse("1.234.567,5")
	require.NoError(t, err)
	assertBytes(t, "1234567500", s)

	s, err = parser.Parse("1,5 KiB")
	require.NoError(t, err)
	assertBytes(t, "1536", s)

	// A nil formatter keeps the default.
	s, err = Parse("1.5", WithNumerals(nil))
	require.NoError(t, err)
	assertBytes(t, "1", s)
}

func TestMustParse(t *testing.T) {
	assertBytes(t, "1024", MustParse("1 KiB"))
	assert.Panics(t, func() { MustParse("1 KiBi") })
}

func TestSplitUnit(t *testing.T) {
	cases := []struct{ in, numeral, token string }{
		{"1 KiB", "1", "KiB"},
		{"1KiB", "1", "KiB"},
		{"KiB", "", "KiB"},
		{"12", "12", ""},
		{"1 234 ko", "1 234", "ko"},
		{"١٢ MB", "١٢", "MB"},
	}

	for _, c := range cases {
		numeral, token := splitUnit(c.in)
		assert.Equal(t, c.numeral, numeral, c.in)
		assert.Equal(t, c.token, token, c.in)
	}
}

func TestCanonicalize(t *testing.T) {
	valid := map[string]string{
		"1":      "1",
		"+1":     "1",
		"-0.50":  "-0.50",
		".5":     "0.5",
		"5.":     "5",
		"007":    "007",
		"-.25":   "-0.25",
		"123.45": "123.45",
	}
	for input, expected := range valid {
		canonical, err := Canonicalize(input)
		if assert.NoError(t, err, input) {
			assert.Equal(t, expected, canonical, input)
		}
	}

	for _, input := range []string{"", ".", "-", "+", "1..2", "1.2.3", "1e3", " 1", "½"} {
		_, err := Canonicalize(input)
		assert.Error(t, err, input)
	}
}

func TestFromAny(t *testing.T) {
	accepted := []interface{}{
		1, int8(1), int16(1), int32(1), int64(1),
		uint(1), uint8(1), uint16(1), uint32(1), uint64(math.MaxUint64),
		"1.5", json.Number("1.25"), Of(1, unit.B), Int(3),
	}
	for _, x := range accepted {
		_, err := FromAny(x)
		assert.NoError(t, err, "%T", x)
	}

	v, err := FromAny(uint64(math.MaxUint64))
	require.NoError(t, err)
	assertBytes(t, "18446744073709551615", requireNew(t, v))

	v, err = FromAny(Of(2, unit.KiB))
	require.NoError(t, err)
	assert.True(t, v.IsQuantity())

	for _, x := range []interface{}{1.5, float32(2), 0.0} {
		_, err := FromAny(x)
		assert.ErrorIs(t, err, errors.ValueError, "%T", x)
		assert.Contains(t, err.Error(), "imprecise")
	}

	for _, x := range []interface{}{nil, struct{}{}, []byte("1")} {
		_, err := FromAny(x)
		assert.ErrorIs(t, err, errors.ValueError, "%T", x)
	}
}
