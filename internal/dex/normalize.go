package dex

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccent decomposes characters and drops combining marks, so display names
// like "Flabébé" normalize the same as their ASCII spellings.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeID converts a display name to its canonical dex identifier:
// lowercase, diacritics stripped, everything but letters and digits dropped.
func NormalizeID(name string) string {
	flattened, _, err := transform.String(deaccent, name)
	if err != nil {
		flattened = name
	}

	var b strings.Builder
	b.Grow(len(flattened))
	for _, r := range strings.ToLower(flattened) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
