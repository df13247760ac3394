// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/optable/bytesize/locale"
	"github.com/optable/bytesize/size"
	"github.com/optable/bytesize/unit"
)

// Profile is a named set of parse and format settings stored in a ConfigDir.
type Profile struct {
	Format size.FormatConfig `json:"format"`
	// DefaultUnit applies to numerals without a unit. Bytes when nil.
	DefaultUnit *unit.Prefix `json:"default_unit,omitempty"`
}

// DefaultProfile wraps size.DefaultFormatConfig.
func DefaultProfile() *Profile {
	return &Profile{Format: size.DefaultFormatConfig()}
}

// FormatConfig returns the profile format settings with the numerals and
// unit names of its locale.
func (p *Profile) FormatConfig() size.FormatConfig {
	c := p.Format
	locale.Localize(&c)
	return c
}

// Parser returns a parser honoring the profile default unit and locale.
func (p *Profile) Parser() *size.Parser {
	c := p.FormatConfig()
	opts := []size.ParseOption{size.WithNumerals(c.Numerals)}
	if p.DefaultUnit != nil {
		opts = append(opts, size.WithDefaultUnit(*p.DefaultUnit))
	}
	return size.NewParser(opts...)
}

// ProfileLoader stores a Profile as indented JSON.
type ProfileLoader struct{}

func (ProfileLoader) Unmarshal(b []byte) (interface{}, error) {
	profile := DefaultProfile()
	if err := json.Unmarshal(b, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (ProfileLoader) Marshal(obj interface{}) ([]byte, error) {
	switch obj.(type) {
	case *Profile, Profile:
		return json.MarshalIndent(obj, "", "  ")
	}
	return nil, fmt.Errorf("unexpected profile type %T", obj)
}

// LoadProfile reads the named profile. An empty name reads the current
// profile and falls back to DefaultProfile when none is marked current.
func LoadProfile(dir *ConfigDir, name string) (*Profile, error) {
	var (
		obj interface{}
		err error
	)
	if name == "" {
		_, obj, err = dir.Current()
		if errors.Is(err, os.ErrNotExist) {
			return DefaultProfile(), nil
		}
		if err != nil {
			return nil, err
		}
	} else if obj, err = dir.Get(name); err != nil {
		return nil, err
	}

	profile, ok := obj.(*Profile)
	if !ok {
		return nil, fmt.Errorf("unexpected profile type %T", obj)
	}
	return profile, nil
}

// FormatFlags can be embedded in a kong command. Unset flags leave the
// profile untouched.
type FormatFlags struct {
	Places   string `help:"Fractional digits, or 'unlimited'." placeholder:"N"`
	Strip    bool   `help:"Strip trailing zeros."`
	Unit     string `help:"Display every size in this unit, e.g. MiB." placeholder:"UNIT"`
	Base     string `help:"Prefix family used to pick the unit: binary or decimal." enum:",binary,decimal,iec,si" default:""`
	Long     bool   `help:"Display long unit names."`
	Sign     bool   `help:"Display '+' in front of non-negative sizes."`
	Rounding string `help:"Rounding method: half-up, half-down, down or up." enum:",half-up,half-down,down,up" default:""`
	Exact    bool   `help:"Prefer a smaller unit over an inexact rendering."`
	Approx   bool   `help:"Mark inexact renderings with '~'."`
	MinValue string `help:"Smallest value displayed in front of a unit above bytes." placeholder:"N"`
	Locale   string `help:"BCP 47 language tag for numerals and unit names, e.g. de-CH." placeholder:"TAG"`
}

// Apply overrides c with the flags that were set.
func (f *FormatFlags) Apply(c *size.FormatConfig) error {
	switch strings.ToLower(f.Places) {
	case "":
	case "unlimited":
		c.MaxPlaces = size.Unlimited
	default:
		places, err := strconv.Atoi(f.Places)
		if err != nil || places < 0 {
			return fmt.Errorf("invalid places %q", f.Places)
		}
		c.MaxPlaces = places
	}

	if f.Unit != "" {
		p, err := unit.Lookup(f.Unit)
		if err != nil {
			return err
		}
		c.Unit = &p
	}
	if f.Base != "" {
		base, err := unit.ParseBase(f.Base)
		if err != nil {
			return err
		}
		c.Base = base
	}
	if f.Rounding != "" {
		m, err := size.ParseRoundingMethod(f.Rounding)
		if err != nil {
			return err
		}
		c.Rounding = m
	}
	if f.MinValue != "" {
		canonical, err := size.Canonicalize(f.MinValue)
		if err != nil {
			return fmt.Errorf("invalid min value: %w", err)
		}
		minValue, ok := new(big.Rat).SetString(canonical)
		if !ok {
			return fmt.Errorf("invalid min value %q", f.MinValue)
		}
		c.MinValue = minValue
	}
	if f.Locale != "" {
		tag, err := language.Parse(f.Locale)
		if err != nil {
			return fmt.Errorf("invalid locale: %w", err)
		}
		c.Locale = tag
	}

	c.StripTrailingZeros = c.StripTrailingZeros || f.Strip
	c.LongName = c.LongName || f.Long
	c.Sign = c.Sign || f.Sign
	c.ExactValue = c.ExactValue || f.Exact
	c.ShowApprox = c.ShowApprox || f.Approx
	return nil
}
