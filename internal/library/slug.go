package library

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackSlug is used when a topic contains no usable characters at all.
const fallbackSlug = "untitled"

// diacriticFolder decomposes characters and strips combining marks, so
// "Álgèbra" slugs the same as "Algebra".
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug derives a deterministic filename fragment from a topic: diacritics
// folded, lowercased, runs of non-alphanumerics collapsed to single
// underscores.
func Slug(topic string) string {
	folded, _, err := transform.String(diacriticFolder, topic)
	if err != nil {
		folded = topic
	}

	var b strings.Builder
	lastUnderscore := true // suppress leading underscore
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	s := strings.TrimSuffix(b.String(), "_")
	if s == "" {
		return fallbackSlug
	}
	return s
}
