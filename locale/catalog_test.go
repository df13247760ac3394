// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/optable/bytesize/size"
	"github.com/optable/bytesize/unit"
)

var _ size.MessageCatalog = (*Catalog)(nil)

func TestCatalog(t *testing.T) {
	c := NewCatalog()

	cases := []struct {
		tag      language.Tag
		prefix   unit.Prefix
		expected string
	}{
		{language.English, unit.KiB, "kibibytes"},
		{language.English, unit.B, "bytes"},
		{language.French, unit.KiB, "kibioctets"},
		{language.French, unit.MB, "mégaoctets"},
		{language.MustParse("fr-CA"), unit.GiB, "gibioctets"},
		{language.German, unit.B, "Byte"},
		{language.MustParse("de-CH"), unit.YiB, "Yobibyte"},
		{language.Japanese, unit.TB, "terabytes"},
		{language.Und, unit.EiB, "exbibytes"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, c.PrefixDisplayName(tc.prefix, tc.tag), "%s %s", tc.tag, tc.prefix)
	}
}

func TestCatalogCoversRegistry(t *testing.T) {
	c := NewCatalog()
	for _, tag := range []language.Tag{language.French, language.German} {
		for _, p := range unit.All() {
			assert.NotEqual(t, p.Name+"s", c.PrefixDisplayName(p, tag), "%s %s", tag, p)
		}
	}
}

func TestCatalogSet(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Set(language.Spanish, unit.KiB, "kibibytes (es)"))
	assert.Equal(t, "kibibytes (es)", c.PrefixDisplayName(unit.KiB, language.Spanish))
	assert.Equal(t, "mebibytes", c.PrefixDisplayName(unit.MiB, language.Spanish))

	assert.Contains(t, c.Languages(), language.Spanish)
	assert.Contains(t, c.Languages(), language.French)
}
