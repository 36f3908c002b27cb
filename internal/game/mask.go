package game

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Mask renders word with every rune not present in revealed replaced by Blank.
// Runes are compared case-folded, and a revealed rune shows at every position
// it occurs, not only where it was guessed.
func Mask(word string, revealed map[rune]struct{}) string {
	folded := make(map[rune]struct{}, len(revealed))
	for r := range revealed {
		folded[foldRune(r)] = struct{}{}
	}
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if _, ok := folded[foldRune(r)]; ok {
			b.WriteRune(r)
		} else {
			b.WriteRune(Blank)
		}
	}
	return b.String()
}

// foldRune case-folds r the same way guesses are normalized. Runes whose
// full folding expands to several runes fall back to lowercase.
func foldRune(r rune) rune {
	f := cases.Fold().String(string(r))
	if fr, size := utf8.DecodeRuneInString(f); size == len(f) {
		return fr
	}
	return unicode.ToLower(r)
}

// hasBlank reports whether a masked word still hides letters.
func hasBlank(public string) bool { return strings.ContainsRune(public, Blank) }
