// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockErr struct{}

func (m *mockErr) Error() string {
	return "mockErr"
}

var myErr = new(mockErr)

func TestPositionalError(t *testing.T) {
	pos := 42
	err := NewPositionalError(pos, myErr)

	var posErr *PositionalError
	assert.ErrorAs(t, err, &posErr)
	if errors.As(err, &posErr) {
		assert.Equal(t, pos, posErr.Position())
		assert.Equal(t, myErr, posErr.Unwrap())
		assert.Empty(t, posErr.Input())
	}
	assert.Equal(t, "Positional(42): mockErr", err.Error())
}

func TestInputError(t *testing.T) {
	err := NewInputError(3, "12 XB", myErr)

	var posErr *PositionalError
	if assert.ErrorAs(t, err, &posErr) {
		assert.Equal(t, 3, posErr.Position())
		assert.Equal(t, "12 XB", posErr.Input())
	}
	assert.Equal(t, `Positional(3, "12 XB"): mockErr`, err.Error())
}

func TestErrors(t *testing.T) {
	assert.Nil(t, NewErrors(), "NewErrors should return nil on empty array")
	assert.Nil(t, NewErrors(nil, nil), "NewErrors should return nil when errors only contain nils")
	assert.Equal(t, myErr, NewErrors(myErr), "NewErrors should unwrap a single error")

	err := NewErrors(nil, myErr, nil, myErr, nil)
	var errs *Errors
	assert.ErrorAs(t, err, &errs)
	if errors.As(err, &errs) {
		assert.ElementsMatch(t, []error{myErr, myErr}, errs.Errors())
		assert.Equal(t, 2, errs.Len())
		assert.Equal(t, myErr, errs.Unwrap())
	}
}

func TestErrorsMessageIsBounded(t *testing.T) {
	var many []error
	for i := 0; i < maxReported+4; i++ {
		many = append(many, fmt.Errorf("err%d", i))
	}

	msg := NewErrors(many...).Error()
	assert.Contains(t, msg, "(and 4 more)")
	assert.False(t, strings.Contains(msg, fmt.Sprintf("err%d", maxReported)))
}

func TestSizeErrorKinds(t *testing.T) {
	kinds := []Kind{ValueError, UnitError, DimensionalityError, PowerResultError, RoundingError}

	for _, kind := range kinds {
		err := NewSizeError(kind, "op", "input", nil)
		assert.ErrorIs(t, err, ErrSize)
		assert.ErrorIs(t, err, kind)
		assert.Equal(t, kind, KindOf(err))

		for _, other := range kinds {
			if other != kind {
				assert.False(t, errors.Is(err, other), "%v should not match %v", kind, other)
			}
		}
	}
}

func TestSizeErrorWrapping(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("while parsing: %w", Errorf(ValueError, "parse", "1.1.1", "%w", cause))

	assert.ErrorIs(t, err, ErrSize)
	assert.ErrorIs(t, err, ValueError)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ValueError, KindOf(err))
	assert.Equal(t, `while parsing: parse: invalid value "1.1.1": boom`, err.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(0), KindOf(nil))
	assert.Equal(t, Kind(0), KindOf(myErr))
	assert.Equal(t, UnitError, KindOf(fmt.Errorf("wrapped: %w", UnitError)))
	assert.ErrorIs(t, UnitError, ErrSize)
}

func TestPositionalSizeError(t *testing.T) {
	err := NewInputError(7, "1.1.1", NewSizeError(ValueError, "parse", "1.1.1", nil))
	assert.ErrorIs(t, err, ValueError)

	var posErr *PositionalError
	assert.ErrorAs(t, err, &posErr)
}
