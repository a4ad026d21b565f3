package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	stripAccents = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes text for comparison: lowercase, trimmed, accents
// decomposed to ASCII, newlines and slashes flattened to spaces, whitespace
// runs collapsed. Pure and deterministic.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	if decomposed, _, err := transform.String(stripAccents, s); err == nil {
		s = decomposed
	}
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "/", " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ContainsWholeWord reports whether phrase occurs in text at a word boundary
// after both are normalized. A hit inside a longer word does not count, so
// "size" is not found in "sizeable".
func ContainsWholeWord(text, phrase string) bool {
	t := Normalize(text)
	p := Normalize(phrase)
	if p == "" {
		return false
	}
	for from := 0; ; {
		idx := strings.Index(t[from:], p)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(p)
		if !isWordChar(boundaryByte(t, start-1)) && !isWordChar(boundaryByte(t, end)) {
			return true
		}
		from = start + 1
	}
}

func boundaryByte(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return ' '
	}
	return s[i]
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}
