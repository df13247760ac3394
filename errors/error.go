// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package errors

import (
	"bytes"
	"fmt"
)

// PositionalError is an error paired with the position (and optionally the
// raw text) of the input that caused it. Bulk operations, e.g. summing a
// stream of sizes, use it so the caller can tell which input(s) failed. Use
// the `Position` method to extract the position.
type PositionalError struct {
	pos   int
	input string
	err   error
}

// NewPositionalError creates an error paired with a position.
func NewPositionalError(pos int, err error) error {
	return &PositionalError{pos: pos, err: err}
}

// NewInputError creates an error paired with a position and the offending
// input text.
func NewInputError(pos int, input string, err error) error {
	return &PositionalError{pos: pos, input: input, err: err}
}

func (e *PositionalError) Error() string {
	if e.input != "" {
		return fmt.Sprintf("Positional(%d, %q): %s", e.pos, e.input, e.err.Error())
	}
	return fmt.Sprintf("Positional(%d): %s", e.pos, e.err.Error())
}

func (e *PositionalError) Position() int {
	return e.pos
}

func (e *PositionalError) Input() string {
	return e.input
}

func (e *PositionalError) Unwrap() error {
	return e.err
}

// Errors is an error that wrap two or more errors. The downside of batching
// many errors is that unwrap will only return the first error. Use the
// `Errors` method to extract all errors.
type Errors struct {
	errs []error
}

// maxReported bounds the number of errors spelled out by Error. A stream
// with thousands of malformed lines should not produce a megabyte message.
const maxReported = 16

func (e *Errors) Error() string {
	buf := new(bytes.Buffer)

	buf.WriteString("Multiple errors: ")
	for i, err := range e.errs {
		if i == maxReported {
			fmt.Fprintf(buf, "(and %d more)", len(e.errs)-maxReported)
			break
		}
		fmt.Fprintf(buf, "(%d){%s}\t", i+1, err.Error())
	}

	return buf.String()
}

func (e *Errors) Errors() []error {
	return e.errs
}

func (e *Errors) Len() int {
	return len(e.errs)
}

func (e *Errors) Unwrap() error {
	// Only return the first error.
	return e.errs[0]
}

// NewErrors drops nil errors and returns nil, the single remaining error, or
// an *Errors wrapping all of them.
func NewErrors(errs ...error) error {
	var errors []error
	for _, err := range errs {
		if err != nil {
			errors = append(errors, err)
		}
	}

	switch len(errors) {
	case 0:
		return nil
	case 1:
		return errors[0]
	default:
		return &Errors{errors}
	}
}
