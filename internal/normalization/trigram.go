package normalization

import (
	"strings"
	"unicode"
)

// TrigramSimilarity mirrors pg_trgm's similarity(): each word is padded with
// two leading blanks and one trailing blank, split into unique 3-rune
// trigrams, and the result is |A∩B| / |A∪B|. Either side without trigrams
// yields 0.
func TrigramSimilarity(a, b string) float64 {
	ta := trigrams(a)
	tb := trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	common := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			common++
		}
	}
	return float64(common) / float64(len(ta)+len(tb)-common)
}

func trigrams(s string) map[string]struct{} {
	out := make(map[string]struct{})
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		padded := []rune("  " + w + " ")
		for i := 0; i+3 <= len(padded); i++ {
			out[string(padded[i:i+3])] = struct{}{}
		}
	}
	return out
}
