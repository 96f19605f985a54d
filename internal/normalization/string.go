package normalization

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// NormalizePlaceName produces the fuzzy-match key for a place name: lower-cased,
// everything except ASCII letters/digits and Hangul syllables dropped, no
// whitespace. Decomposed Hangul is composed first so "중복" typed on a jamo
// keyboard matches the precomposed form.
func NormalizePlaceName(name string) string {
	lowered := cases.Lower(language.Und).String(norm.NFC.String(name))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if keepNameRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func keepNameRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '가' && r <= '힣':
		return true
	default:
		return false
	}
}

// NormalizePhone reduces a phone number to digits in Korean local form:
// a leading country code "82" becomes "0".
func NormalizePhone(phone string) string {
	narrowed := width.Narrow.String(phone)
	var b strings.Builder
	b.Grow(len(narrowed))
	for _, r := range narrowed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "82") {
		digits = "0" + digits[2:]
	}
	return digits
}

// CleanTagNames trims names, drops blanks and removes repeats, keeping the
// first occurrence order.
func CleanTagNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimFunc(n, unicode.IsSpace)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
