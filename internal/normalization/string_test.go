package normalization

import (
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestNormalizePlaceName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"korean with spaces and punctuation", "중복 테스트 카페!!", "중복테스트카페"},
		{"korean compact", "중복테스트카페", "중복테스트카페"},
		{"mixed case latin", "Blue Bottle Coffee (Seongsu)", "bluebottlecoffeeseongsu"},
		{"digits kept", "카페 1988", "카페1988"},
		{"tabs and newlines", "  a\tb\nc  ", "abc"},
		{"only symbols", "!@#$%^&*()", ""},
		{"empty", "", ""},
		{"jamo outside syllable block dropped", "ㅋㅋ카페", "카페"},
		{"other scripts dropped", "すし 스시 sushi", "스시sushi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePlaceName(tt.in); got != tt.want {
				t.Errorf("NormalizePlaceName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizePlaceNameComposesDecomposedHangul(t *testing.T) {
	decomposed := norm.NFD.String("중복 카페")
	if decomposed == "중복 카페" {
		t.Fatal("expected NFD form to differ from the composed input")
	}
	if got := NormalizePlaceName(decomposed); got != "중복카페" {
		t.Errorf("NormalizePlaceName(NFD) = %q, want %q", got, "중복카페")
	}
}

func TestNormalizePlaceNameIdempotent(t *testing.T) {
	inputs := []string{
		"중복 테스트 카페!!",
		"Blue Bottle Coffee (Seongsu)",
		"  ÀÉÎ õü 123 ",
		norm.NFD.String("한강 공원"),
		"İstanbul Kebab",
		"",
	}
	for _, in := range inputs {
		once := NormalizePlaceName(in)
		if twice := NormalizePlaceName(once); twice != once {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+82 10-1234-5678", "01012345678"},
		{"010-9999-0000", "01099990000"},
		{"01099990000", "01099990000"},
		{"(02) 123-4567", "021234567"},
		{"８２-１０-１２３４-５６７８", "01012345678"},
		{"no digits", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizePhone(tt.in); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanTagNames(t *testing.T) {
	got := CleanTagNames([]string{" cafe ", "", "cafe", "brunch", "  ", "Cafe"})
	want := []string{"cafe", "brunch", "Cafe"}
	if len(got) != len(want) {
		t.Fatalf("CleanTagNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CleanTagNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
