package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and removes combining marks, so
// "Diseño" becomes "Diseno" before slugging.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// DeriveSlug turns a post title into a URL-safe slug: lowercase,
// diacritics stripped, punctuation removed, runs of whitespace and
// hyphens collapsed to a single hyphen, leading/trailing hyphens
// trimmed. Applying it to an already valid slug returns the slug
// unchanged.
func DeriveSlug(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))

	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	pendingHyphen := false
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-':
			pendingHyphen = true
		default:
			// punctuation and symbols are dropped entirely
		}
	}

	return b.String()
}
