package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Fold normalises text for case-insensitive comparison across scripts.
func Fold(s string) string {
	return folder.String(norm.NFKC.String(strings.TrimSpace(s)))
}

// FoldEqual reports whether two strings are equal under case folding.
func FoldEqual(a, b string) bool {
	return Fold(a) == Fold(b)
}

// FoldContains reports whether haystack contains needle under case folding.
func FoldContains(haystack, needle string) bool {
	needle = Fold(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), needle)
}

// Slugify converts a display name into a URL-safe slug. Runs of characters
// outside letters and digits collapse into single hyphens.
func Slugify(name string) string {
	folded := Fold(name)
	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := true
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
