package normalization

import (
	"math"
	"testing"
)

func TestTrigramSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "cafe", "cafe", 1},
		{"pg_trgm doc example", "cat", "cats", 0.5},
		{"one letter differs", "abc", "abd", 2.0 / 6.0},
		{"disjoint", "abc", "xyz", 0},
		{"empty left", "", "abc", 0},
		{"both empty", "", "", 0},
		{"hangul identical", "중복테스트카페", "중복테스트카페", 1},
		{"case insensitive", "CAFE", "cafe", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrigramSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TrigramSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTrigramSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"스타벅스강남점", "스타벅스강남역점"},
		{"bluebottle", "bluebotle"},
	}
	for _, p := range pairs {
		if a, b := TrigramSimilarity(p[0], p[1]), TrigramSimilarity(p[1], p[0]); a != b {
			t.Errorf("asymmetric similarity for %q/%q: %v vs %v", p[0], p[1], a, b)
		}
	}
}

func TestTrigramsPadding(t *testing.T) {
	got := trigrams("cat")
	for _, want := range []string{"  c", " ca", "cat", "at "} {
		if _, ok := got[want]; !ok {
			t.Errorf("trigrams(cat) missing %q (got %v)", want, got)
		}
	}
	if len(got) != 4 {
		t.Errorf("trigrams(cat) has %d entries, want 4", len(got))
	}
}
