package newsparse

import (
	"strings"
	"unicode"
)

var letterReplacer = strings.NewReplacer(
	"\u064a", "\u06cc",
	"\u0649", "\u06cc",
	"\u0643", "\u06a9",
	"\u00a0", " ",
	"\u200b", "",
	"\ufeff", "",
)

// NormalizeText unifies Arabic and Persian letter variants, drops
// zero-width characters other than ZWNJ and collapses whitespace runs into
// single spaces.
func NormalizeText(s string) string {
	s = letterReplacer.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
