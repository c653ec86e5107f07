// Package locale holds the Turkish-aware text normalisation used for
// user-entered comparison text.
package locale

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// combiningDotAbove is what a generic lower-casing of 'İ' leaves behind.
const combiningDotAbove = '̇'

// Upper upper-cases s with the Turkish mapping: 'i' becomes 'İ' and 'ı'
// becomes 'I'.
func Upper(s string) string {
	if s == "" {
		return ""
	}
	// Casers keep state between calls and must not be shared.
	return cases.Upper(language.Turkish).String(s)
}

// Lower lower-cases s with the Turkish mapping: 'I' becomes 'ı' and 'İ'
// becomes 'i'.
func Lower(s string) string {
	if s == "" {
		return ""
	}
	return cases.Lower(language.Turkish).String(s)
}

// Fold returns a matching key for s. All of 'İ', 'I', 'ı' and 'i' collapse
// to 'i' and every other letter is lower-cased, so comparisons do not
// depend on which I-form the user typed. Fold is for comparison only,
// never for display.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	prevI := false
	for _, r := range s {
		switch r {
		case 'İ', 'I', 'ı', 'i':
			b.WriteRune('i')
			prevI = true
			continue
		case combiningDotAbove:
			if prevI {
				continue
			}
		}
		prevI = false
		b.WriteRune(r)
	}
	return cases.Lower(language.Turkish).String(b.String())
}

// NewCollator returns a collator ordering text the way a Turkish reader
// expects (ç after c, ğ after g, ı before i, and so on).
func NewCollator() *collate.Collator {
	return collate.New(language.Turkish)
}
