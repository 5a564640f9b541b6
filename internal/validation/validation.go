package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// slugCleanup collapses runs of characters that are not letters, digits,
// or hyphens into a single hyphen.
var slugCleanup = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// ValidateWord checks that a word is non-empty and within length limits.
func ValidateWord(word string) (bool, string) {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return false, "Word is required"
	}
	if len(trimmed) > 100 {
		return false, "Word must be 100 characters or fewer"
	}
	return true, ""
}

// NormalizeWord trims and lowercases a word so duplicate checks are
// case-insensitive.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Slugify derives a URL slug from a word: lowercase, diacritics kept,
// non-alphanumeric runs collapsed to single hyphens.
func Slugify(word string) string {
	s := strings.ToLower(strings.TrimSpace(word))
	s = slugCleanup.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}

// ValidateMeaning checks a meaning text.
func ValidateMeaning(meaning string) (bool, string) {
	trimmed := strings.TrimSpace(meaning)
	if trimmed == "" {
		return false, "Meaning is required"
	}
	if len(trimmed) > 500 {
		return false, "Meaning must be 500 characters or fewer"
	}
	return true, ""
}

// ValidateExample checks an example sentence and its translation.
func ValidateExample(exampleText, translation string) (bool, string) {
	if strings.TrimSpace(exampleText) == "" {
		return false, "Example sentence is required"
	}
	if strings.TrimSpace(translation) == "" {
		return false, "Example translation is required"
	}
	if len(exampleText) > 500 || len(translation) > 500 {
		return false, "Examples must be 500 characters or fewer"
	}
	return true, ""
}

// HasLetter reports whether the string contains at least one letter.
// Guards against punctuation-only submissions that would slugify to nothing.
func HasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
