// Package normalize prepares titles and queries for fuzzy comparison.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

// accents maps the accented Latin letters used in Portuguese titles to their
// base letter. The table is deliberately narrow: letters outside it pass
// through unchanged.
var accents = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a',
	'À': 'a', 'Á': 'a', 'Â': 'a', 'Ã': 'a', 'Ä': 'a', 'Å': 'a',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'È': 'e', 'É': 'e', 'Ê': 'e', 'Ë': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'Ì': 'i', 'Í': 'i', 'Î': 'i', 'Ï': 'i',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o', 'ø': 'o',
	'Ò': 'o', 'Ó': 'o', 'Ô': 'o', 'Õ': 'o', 'Ö': 'o', 'Ø': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
	'Ù': 'u', 'Ú': 'u', 'Û': 'u', 'Ü': 'u',
	'ç': 'c', 'Ç': 'c',
	'ñ': 'n', 'Ñ': 'n',
}

// Fold case-folds s.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// StripAccents replaces every letter in the accent table with its base letter.
func StripAccents(s string) string {
	return strings.Map(func(r rune) rune {
		if base, ok := accents[r]; ok {
			return base
		}
		return r
	}, s)
}

// Text case-folds s and then strips accents.
func Text(s string) string {
	return StripAccents(Fold(s))
}
