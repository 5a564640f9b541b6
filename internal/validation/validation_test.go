package validation

import (
	"strings"
	"testing"
)

func TestValidateWord(t *testing.T) {
	tests := []struct {
		name  string
		word  string
		valid bool
	}{
		{"simple word", "ogbo", true},
		{"word with diacritics", "ọ̀gbọ́", true},
		{"word with space", "ka cheli", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too long", strings.Repeat("a", 101), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, _ := ValidateWord(tt.word)
			if valid != tt.valid {
				t.Errorf("ValidateWord(%q) = %v, want %v", tt.word, valid, tt.valid)
			}
		})
	}
}

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ogbo", "ogbo"},
		{"  OGBO  ", "ogbo"},
		{"already", "already"},
	}

	for _, tt := range tests {
		if got := NormalizeWord(tt.in); got != tt.want {
			t.Errorf("NormalizeWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ogbo", "ogbo"},
		{"ka cheli", "ka-cheli"},
		{"  Ógbó  ", "ógbó"},
		{"word!?", "word"},
		{"two  spaces", "two-spaces"},
		{"a--b", "a-b"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHasLetter(t *testing.T) {
	if HasLetter("!?.") {
		t.Error("HasLetter(\"!?.\") = true, want false")
	}
	if !HasLetter("a!") {
		t.Error("HasLetter(\"a!\") = false, want true")
	}
}
