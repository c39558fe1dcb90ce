// Package strcase converts Go identifiers to the snake_case keys used in
// JSON payloads and validation errors.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake turns an identifier such as ClaimantID or HTTPServer into
// claimant_id or http_server. Runs of capitals are kept together as one word.
func ToLowerSnake(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && wordStart(runes, i) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// wordStart reports whether the upper case rune at i begins a new word.
func wordStart(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}

	// last capital of an acronym followed by a lower case word: HTTPServer
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
