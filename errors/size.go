// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package errors

import (
	"errors"
	"fmt"
)

// ErrSize is the root of every error produced while constructing, combining
// or displaying sizes. All SizeError values match it with errors.Is.
var ErrSize = errors.New("size error")

// Kind narrows a SizeError. A Kind is itself an error so that it can be used
// as an errors.Is target:
//
//	if errors.Is(err, errors.UnitError) { ... }
type Kind uint8

const (
	// ValueError reports an unparseable or imprecise input.
	ValueError Kind = iota + 1
	// UnitError reports an unknown or incompatible unit prefix.
	UnitError
	// DimensionalityError reports a size multiplied by a size.
	DimensionalityError
	// PowerResultError reports an exponentiation involving a size.
	PowerResultError
	// RoundingError reports an inexact result where an exact one was requested.
	RoundingError
)

var kindNames = map[Kind]string{
	ValueError:          "invalid value",
	UnitError:           "invalid unit",
	DimensionalityError: "unrepresentable dimension",
	PowerResultError:    "unrepresentable power",
	RoundingError:       "inexact result",
}

func (k Kind) Error() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown size error kind %d", uint8(k))
}

// Is makes every Kind match ErrSize.
func (k Kind) Is(target error) bool {
	return target == ErrSize
}

// SizeError is the concrete error returned by the size packages. Op names the
// failing operation, Input holds the offending operand when there is one.
type SizeError struct {
	Kind  Kind
	Op    string
	Input string
	Err   error
}

// NewSizeError creates a SizeError of the given kind.
func NewSizeError(kind Kind, op, input string, err error) error {
	return &SizeError{Kind: kind, Op: op, Input: input, Err: err}
}

// Errorf is a shorthand to create a SizeError with a formatted cause.
func Errorf(kind Kind, op, input, format string, args ...interface{}) error {
	return NewSizeError(kind, op, input, fmt.Errorf(format, args...))
}

func (e *SizeError) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Input != "" {
		msg += fmt.Sprintf(" %q", e.Input)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SizeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrSize or the error's Kind.
func (e *SizeError) Is(target error) bool {
	if target == ErrSize {
		return true
	}
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf extracts the Kind of a size error, or 0 if err is not one.
func KindOf(err error) Kind {
	var sizeErr *SizeError
	if errors.As(err, &sizeErr) {
		return sizeErr.Kind
	}
	var kind Kind
	if errors.As(err, &kind) {
		return kind
	}
	return 0
}

// Is forwards to the standard library so callers need a single import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As forwards to the standard library so callers need a single import.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
