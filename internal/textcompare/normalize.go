package textcompare

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes OCR output for comparison: lower-cases the text,
// collapses runs of whitespace (spaces, tabs, newlines) into a single space
// and trims leading/trailing whitespace.
//
// Normalize is total and idempotent: it never fails, and applying it twice
// yields the same result as applying it once.
func Normalize(text string) string {
	lower := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lower))

	inSpace := false
	for _, r := range lower {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}

	return b.String()
}
