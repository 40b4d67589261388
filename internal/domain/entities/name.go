package entities

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that carry no combining mark under NFKD and would otherwise survive
// normalization unchanged.
var undecomposable = strings.NewReplacer(
	"ł", "l", "Ł", "L",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
	"ß", "ss",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
)

// NormalizeName strips diacritics and folds case so that names typed in
// meeting notes compare equal to canonical spellings. Whitespace is kept as
// is: "Jan  Kowalski" and "Jan Kowalski" are different names.
func NormalizeName(name string) string {
	folded := cases.Fold().String(undecomposable.Replace(name))
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, folded)
	if err != nil {
		stripped = folded
	}
	return stripped
}

// HasName reports whether query refers to this member. Alternative spellings
// are tried first, then the bare surname, then "last first" and "first last".
func (m *Member) HasName(query string) bool {
	q := NormalizeName(query)
	name := NormalizeName(m.LastName + " " + m.FirstName)

	for _, alt := range m.AlternativeNames {
		if q == NormalizeName(alt) {
			return true
		}
	}

	// Older session records only log the surname.
	if q == NormalizeName(m.LastName) {
		return true
	}

	return q == name || q == NormalizeName(m.FirstName+" "+m.LastName)
}

// NormalizedName returns the normalized "first last" form of the member name.
func (m *Member) NormalizedName() string {
	return NormalizeName(m.FirstName + " " + m.LastName)
}
