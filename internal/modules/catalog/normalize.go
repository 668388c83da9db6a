// README: Text normalization for Spanish utterance/product matching.
package catalog

import (
	"strings"
	"unicode"
)

var diacritics = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
	"ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u",
	"Ü", "u", "Ñ", "n",
)

// Normalize lowercases and folds Spanish diacritics so that "teflón" and
// "TEFLON" compare equal. Whitespace is collapsed to single spaces.
func Normalize(s string) string {
	s = diacritics.Replace(strings.ToLower(strings.TrimSpace(s)))
	return strings.Join(strings.Fields(s), " ")
}

// Tokens splits a normalized string into its words, dropping punctuation,
// so "sí," and "si" tokenize identically.
func Tokens(s string) []string {
	return strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
