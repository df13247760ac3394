// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package locale

import (
	"sync"

	"golang.org/x/text/language"

	"github.com/optable/bytesize/size"
)

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
)

// DefaultCatalog returns the shared built-in catalog.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() { defaultCatalog = NewCatalog() })
	return defaultCatalog
}

// Localize sets the numerals and the unit names matching c.Locale. English
// and undetermined tags keep POSIX numerals.
func Localize(c *size.FormatConfig) {
	c.Catalog = DefaultCatalog()

	if base, _ := c.Locale.Base(); c.Locale == language.Und || base.String() == "en" {
		c.Numerals = POSIX
		return
	}
	c.Numerals = For(c.Locale)
}
