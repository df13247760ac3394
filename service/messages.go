// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package service

import (
	"encoding/json"

	"github.com/optable/bytesize/size"
	"github.com/optable/bytesize/unit"
)

type (
	// ParseOptions tune how text is read.
	ParseOptions struct {
		// DefaultUnit applies to numerals without a unit, bytes when unset.
		DefaultUnit *unit.Prefix `json:"default_unit,omitempty"`
		// Locale is a BCP 47 tag selecting the numeral notation, POSIX when
		// unset.
		Locale string `json:"locale,omitempty"`
	}

	ParseRequest struct {
		Text    string       `json:"text"`
		Options ParseOptions `json:"options"`
	}

	ParseResponse struct {
		Size size.Size `json:"size"`
	}

	// FormatRequest renders a size. Fields missing from Config keep the
	// values of size.DefaultFormatConfig.
	FormatRequest struct {
		Size   size.Size          `json:"size"`
		Config *size.FormatConfig `json:"config,omitempty"`
	}

	FormatResponse struct {
		Text string `json:"text"`
	}

	// SumRequest adds sizes given as text, one per entry.
	SumRequest struct {
		Sizes   []string           `json:"sizes"`
		Options ParseOptions       `json:"options"`
		Config  *size.FormatConfig `json:"config,omitempty"`
	}

	// SumResponse holds the exact sum of the valid entries, its rendering and
	// the entries that could not be parsed.
	SumResponse struct {
		Size   size.Size    `json:"size"`
		Text   string       `json:"text"`
		Errors []InputError `json:"errors,omitempty"`
	}

	// InputError locates an invalid entry by its 1-based position.
	InputError struct {
		Position int    `json:"position"`
		Input    string `json:"input"`
		Kind     string `json:"kind,omitempty"`
		Message  string `json:"message"`
	}
)

func (r *FormatRequest) UnmarshalJSON(data []byte) error {
	type plain FormatRequest
	defaults := size.DefaultFormatConfig()
	req := plain{Config: &defaults}
	if err := json.Unmarshal(data, &req); err != nil {
		return err
	}
	*r = FormatRequest(req)
	return nil
}

func (r *SumRequest) UnmarshalJSON(data []byte) error {
	type plain SumRequest
	defaults := size.DefaultFormatConfig()
	req := plain{Config: &defaults}
	if err := json.Unmarshal(data, &req); err != nil {
		return err
	}
	*r = SumRequest(req)
	return nil
}

func formatConfig(c *size.FormatConfig) size.FormatConfig {
	if c == nil {
		return size.DefaultFormatConfig()
	}
	return *c
}
