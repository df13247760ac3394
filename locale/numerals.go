// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.

// Package locale provides size.NumeralFormatter and size.MessageCatalog
// implementations backed by the CLDR data shipped with golang.org/x/text.
package locale

import (
	"fmt"
	"math/big"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/optable/bytesize/size"
)

// POSIX is the core default: '.' radix and no digit grouping.
var POSIX = size.POSIX

// Numerals reads and writes decimals the way a language does: its radix, its
// group separator and its digit glyphs. Digits are always grouped by three.
// A Numerals is immutable and safe for concurrent use.
type Numerals struct {
	tag     language.Tag
	decimal string
	group   string
	minus   string
	digits  [10]rune
}

var numeralsCache sync.Map // language.Tag -> *Numerals

// For returns the numerals of tag, discovered once from a message.Printer
// and cached.
func For(tag language.Tag) *Numerals {
	if n, ok := numeralsCache.Load(tag); ok {
		return n.(*Numerals)
	}
	n, _ := numeralsCache.LoadOrStore(tag, discover(tag))
	return n.(*Numerals)
}

// discover prints a few sample numbers and reads the separators back. 1.5 is
// exact in binary so the sample does not depend on float rounding.
func discover(tag language.Tag) *Numerals {
	p := message.NewPrinter(tag)
	n := &Numerals{tag: tag, decimal: ".", minus: "-"}

	for d := 0; d < 10; d++ {
		n.digits[d], _ = utf8.DecodeRuneInString(p.Sprintf("%d", d))
	}

	if sep := n.between(p.Sprintf("%d", 1234567), 1, 2); sep != "" {
		n.group = sep
	}
	if sep := n.between(p.Sprintf("%.1f", 1.5), 1, 5); sep != "" {
		n.decimal = sep
	}
	if neg := p.Sprintf("%d", -1); strings.HasSuffix(neg, string(n.digits[1])) {
		if minus := strings.TrimSuffix(neg, string(n.digits[1])); minus != "" {
			n.minus = minus
		}
	}
	return n
}

// between returns the text found between the first occurrence of digit a
// and the following occurrence of digit b in s.
func (n *Numerals) between(s string, a, b int) string {
	start := strings.IndexRune(s, n.digits[a])
	if start < 0 {
		return ""
	}
	start += utf8.RuneLen(n.digits[a])
	end := strings.IndexRune(s[start:], n.digits[b])
	if end < 0 {
		return ""
	}
	return s[start : start+end]
}

func (n *Numerals) Tag() language.Tag {
	return n.tag
}

// Decimal returns the radix separator.
func (n *Numerals) Decimal() string {
	return n.decimal
}

// Group returns the digit group separator, or "" if the language does not
// group digits.
func (n *Numerals) Group() string {
	return n.group
}

// FormatNumeral renders a canonical decimal, e.g. "-1234567.5" becomes
// "-1.234.567,5" in German.
func (n *Numerals) FormatNumeral(canonical string) string {
	negative := strings.HasPrefix(canonical, "-")
	intPart, fracPart := strings.TrimPrefix(canonical, "-"), ""
	if dot := strings.IndexByte(intPart, '.'); dot >= 0 {
		intPart, fracPart = intPart[:dot], intPart[dot+1:]
	}

	if n.group != "" {
		if i, ok := new(big.Int).SetString(intPart, 10); ok {
			intPart = strings.ReplaceAll(humanize.BigComma(i), ",", "\x00")
		}
	}

	var b strings.Builder
	if negative {
		b.WriteString(n.minus)
	}
	n.writeDigits(&b, intPart)
	if fracPart != "" {
		b.WriteString(n.decimal)
		n.writeDigits(&b, fracPart)
	}
	return b.String()
}

// writeDigits maps ASCII digits to the locale glyphs and the NUL placeholder
// to the group separator.
func (n *Numerals) writeDigits(b *strings.Builder, ascii string) {
	for i := 0; i < len(ascii); i++ {
		switch c := ascii[i]; {
		case c == 0:
			b.WriteString(n.group)
		case c >= '0' && c <= '9':
			b.WriteRune(n.digits[c-'0'])
		default:
			b.WriteByte(c)
		}
	}
}

// ParseNumeral accepts locale or ASCII digits, the locale radix, an optional
// '+', '-' or locale minus sign, and group separators at every third digit
// from the radix. Ungrouped integers are accepted too.
func (n *Numerals) ParseNumeral(text string) (string, error) {
	s := strings.TrimSpace(text)
	negative := false
	switch {
	case n.minus != "-" && strings.HasPrefix(s, n.minus):
		negative, s = true, strings.TrimPrefix(s, n.minus)
	case strings.HasPrefix(s, "-"):
		negative, s = true, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	intPart, fracPart := s, ""
	hasRadix := false
	if i := strings.Index(s, n.decimal); i >= 0 {
		intPart, fracPart, hasRadix = s[:i], s[i+len(n.decimal):], true
	}

	intDigits, err := n.ungroup(intPart)
	if err != nil {
		return "", fmt.Errorf("%q: %w", text, err)
	}
	fracDigits, err := n.asciiDigits(fracPart)
	if err != nil {
		return "", fmt.Errorf("%q: %w", text, err)
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(intDigits)
	if hasRadix {
		b.WriteByte('.')
		b.WriteString(fracDigits)
	}
	return size.Canonicalize(b.String())
}

func (n *Numerals) ungroup(s string) (string, error) {
	groups := n.splitGroups(s)
	if len(groups) == 1 {
		return n.asciiDigits(s)
	}

	var b strings.Builder
	for i, g := range groups {
		digits, err := n.asciiDigits(g)
		if err != nil {
			return "", err
		}
		if l := len(digits); l != 3 && (i != 0 || l == 0 || l > 3) {
			return "", fmt.Errorf("misplaced group separator %q", n.group)
		}
		b.WriteString(digits)
	}
	return b.String(), nil
}

// splitGroups splits on the group separator. Languages grouping with a
// space-like separator also accept a plain space.
func (n *Numerals) splitGroups(s string) []string {
	if n.group == "" {
		return []string{s}
	}
	if r, _ := utf8.DecodeRuneInString(n.group); isSpaceLike(r) {
		s = strings.Map(func(r rune) rune {
			if isSpaceLike(r) {
				return ' '
			}
			return r
		}, s)
		return strings.Split(s, " ")
	}
	return strings.Split(s, n.group)
}

func isSpaceLike(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Zs, r)
}

func (n *Numerals) asciiDigits(s string) (string, error) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case n.digit(r) >= 0:
			b.WriteByte(byte('0' + n.digit(r)))
		default:
			return "", fmt.Errorf("unexpected character %q", r)
		}
	}
	return b.String(), nil
}

func (n *Numerals) digit(r rune) int {
	for d, glyph := range n.digits {
		if glyph == r {
			return d
		}
	}
	return -1
}
