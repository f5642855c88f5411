// Package slug derives canonical URL path segments from display names.
//
// Catalog records sometimes arrive without a slug column; the deriver is
// then the only source of a URL identifier, so it must be deterministic
// and idempotent across loads.
package slug

import (
	"strings"
	"unicode"
)

// turkishFold maps the six Turkish letters present in the catalog's
// source data to their base Latin equivalents. Applied after lowercasing.
var turkishFold = strings.NewReplacer(
	"ğ", "g",
	"ü", "u",
	"ş", "s",
	"ı", "i",
	"ö", "o",
	"ç", "c",
)

// Derive converts a display name into a URL-safe slug.
//
// Rules:
//  1. Lowercase.
//  2. Fold ğ ü ş ı ö ç to g u s i o c.
//  3. Collapse each whitespace run into a single hyphen.
//  4. Drop every remaining rune outside [a-z0-9_-].
//
// Empty input yields an empty slug; callers must treat that as "no
// canonical identifier available" and route by the entity's raw ID.
func Derive(name string) string {
	folded := turkishFold.Replace(strings.ToLower(name))

	var b strings.Builder
	b.Grow(len(folded))

	inSpace := false
	for _, r := range folded {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
