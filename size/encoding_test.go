// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package size

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optable/bytesize/errors"
	"github.com/optable/bytesize/unit"
)

func TestTextEncoding(t *testing.T) {
	text, err := Of(3, unit.YiB).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "3626777458843887524118528", string(text))

	text, err = Size{}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0", string(text))

	var s Size
	require.NoError(t, s.UnmarshalText([]byte("1.5 KiB")))
	assertBytes(t, "1536", s)

	err = s.UnmarshalText([]byte("1.5 KiBs"))
	assert.ErrorIs(t, err, errors.UnitError)
	assertBytes(t, "1536", s)
}

func TestBinaryEncoding(t *testing.T) {
	sizes := append(randomSizes(20), Size{}, Of(-1, unit.B), Of(255, unit.B))
	for _, s := range sizes {
		data, err := s.MarshalBinary()
		require.NoError(t, err)

		var decoded Size
		require.NoError(t, decoded.UnmarshalBinary(data))
		assert.True(t, s.Equal(decoded), s.GoString())
	}

	data, err := Of(-258, unit.B).MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 1, 2}, data)

	var s Size
	assert.ErrorIs(t, s.UnmarshalBinary(nil), errors.ValueError)
	assert.ErrorIs(t, s.UnmarshalBinary([]byte{2, 1}), errors.ValueError)
}

func TestJSONEncoding(t *testing.T) {
	type payload struct {
		S Size
	}

	data, err := json.Marshal(payload{Of(1536, unit.B)})
	require.NoError(t, err)
	assert.Equal(t, `{"S":"1536"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"S":"2 MB"}`), &p))
	assertBytes(t, "2000000", p.S)

	err = json.Unmarshal([]byte(`{"S":"two"}`), &p)
	assert.ErrorIs(t, err, errors.ErrSize)
}
