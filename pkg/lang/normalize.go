// Package lang canonicalizes raw idiom text and classifies it as
// Hebrew-containing or English-containing.
package lang

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tag identifies which language side of an idiom pair produced a value.
type Tag string

const (
	EN Tag = "en"
	HE Tag = "he"
)

// Bidirectional control marks that copy-pasted Hebrew routinely carries.
func isDirectionMark(r rune) bool {
	switch r {
	case '\u200e', '\u200f', // LRM, RLM
		'\u061c',                                         // ALM
		'\u202a', '\u202b', '\u202c', '\u202d', '\u202e', // embeddings/overrides
		'\u2066', '\u2067', '\u2068', '\u2069': // isolates
		return true
	}
	return false
}

var canonicalize = transform.Chain(runes.Remove(runes.Predicate(isDirectionMark)), norm.NFC)

// Normalize strips direction marks, NFC-composes and trims whitespace.
// Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	result, _, err := transform.String(canonicalize, s)
	if err != nil {
		result = s
	}
	return strings.TrimSpace(result)
}

// IsHebrew reports whether s contains at least one Hebrew code point.
// A substring-presence test, not whole-string language identification:
// mixed-script text can be both Hebrew and English.
func IsHebrew(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hebrew, r) {
			return true
		}
	}
	return false
}

// IsEnglish reports whether s contains at least one ASCII Latin letter.
func IsEnglish(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// RequiredFieldsPresent reports whether every field is non-empty after
// normalization.
func RequiredFieldsPresent(fields ...string) bool {
	for _, f := range fields {
		if Normalize(f) == "" {
			return false
		}
	}
	return true
}
