// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/optable/bytesize/unit"
)

// Catalog implements size.MessageCatalog on top of a message catalog keyed
// by the English plural name of each prefix. Region variants resolve to
// their parent language ("fr-CA" uses "fr"); anything else falls back to
// English.
type Catalog struct {
	builder *catalog.Builder
}

var builtin = map[language.Tag]map[string]string{
	language.French: {
		"bytes":      "octets",
		"kilobytes":  "kilooctets",
		"megabytes":  "mégaoctets",
		"gigabytes":  "gigaoctets",
		"terabytes":  "téraoctets",
		"petabytes":  "pétaoctets",
		"exabytes":   "exaoctets",
		"zettabytes": "zettaoctets",
		"yottabytes": "yottaoctets",
		"kibibytes":  "kibioctets",
		"mebibytes":  "mébioctets",
		"gibibytes":  "gibioctets",
		"tebibytes":  "tébioctets",
		"pebibytes":  "pébioctets",
		"exbibytes":  "exbioctets",
		"zebibytes":  "zébioctets",
		"yobibytes":  "yobioctets",
	},
	language.German: {
		"bytes":      "Byte",
		"kilobytes":  "Kilobyte",
		"megabytes":  "Megabyte",
		"gigabytes":  "Gigabyte",
		"terabytes":  "Terabyte",
		"petabytes":  "Petabyte",
		"exabytes":   "Exabyte",
		"zettabytes": "Zettabyte",
		"yottabytes": "Yottabyte",
		"kibibytes":  "Kibibyte",
		"mebibytes":  "Mebibyte",
		"gibibytes":  "Gibibyte",
		"tebibytes":  "Tebibyte",
		"pebibytes":  "Pebibyte",
		"exbibytes":  "Exbibyte",
		"zebibytes":  "Zebibyte",
		"yobibytes":  "Yobibyte",
	},
}

// NewCatalog returns a Catalog holding English, French and German names.
func NewCatalog() *Catalog {
	c := &Catalog{builder: catalog.NewBuilder(catalog.Fallback(language.English))}
	for _, p := range unit.All() {
		key := messageKey(p)
		// Errors are only returned for malformed messages, not plain strings.
		_ = c.builder.SetString(language.English, key, key)
	}
	for tag, names := range builtin {
		for key, name := range names {
			_ = c.builder.SetString(tag, key, name)
		}
	}
	return c
}

// Set adds or replaces the display name of p for tag.
func (c *Catalog) Set(tag language.Tag, p unit.Prefix, name string) error {
	return c.builder.SetString(tag, messageKey(p), name)
}

// Languages lists the languages holding at least one name.
func (c *Catalog) Languages() []language.Tag {
	return c.builder.Languages()
}

// PrefixDisplayName returns the plural long name of p in tag.
func (c *Catalog) PrefixDisplayName(p unit.Prefix, tag language.Tag) string {
	return message.NewPrinter(tag, message.Catalog(c.builder)).Sprintf(messageKey(p))
}

func messageKey(p unit.Prefix) string {
	return p.Name + "s"
}
