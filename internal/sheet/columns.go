package sheet

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Worksheet headers drift in accent and casing between uploads and what a
// store hands back ("Observação" vs "OBSERVACAO"), so column discovery
// works over a folded form: lowercased, trimmed, diacritics stripped.

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold returns the normalized form of a header name used for matching.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// FindColumn locates the first header whose folded name contains any of the
// given tokens, trying tokens in priority order. Tokens are matched against
// the folded header, so callers pass unaccented lowercase tokens.
func FindColumn(header []string, tokens ...string) (int, bool) {
	folded := make([]string, len(header))
	for i, h := range header {
		folded[i] = Fold(h)
	}

	for _, token := range tokens {
		for i, h := range folded {
			if strings.Contains(h, token) {
				return i, true
			}
		}
	}
	return 0, false
}

// FindColumnFunc locates the first header whose folded name satisfies the
// predicate. Used when substring tokens alone cannot express the rule
// (e.g. supplier name columns that must not be code columns).
func FindColumnFunc(header []string, match func(folded string) bool) (int, bool) {
	for i, h := range header {
		if match(Fold(h)) {
			return i, true
		}
	}
	return 0, false
}

// ContainsAny reports whether the folded name contains any of the tokens.
func ContainsAny(folded string, tokens ...string) bool {
	for _, token := range tokens {
		if strings.Contains(folded, token) {
			return true
		}
	}
	return false
}
