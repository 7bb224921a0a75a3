// Package stringprocessing provides the string helpers the command-line parser
// and the registries are built on: multi-literal prefix matching, one-shot
// prefix trimming, earliest-occurrence search and case folding of keys.
package stringprocessing

import (
	"strings"

	"golang.org/x/text/cases"
)

// StartsWithAny reports whether s starts with at least one of the given values.
func StartsWithAny(s string, values []string) bool {
	for _, value := range values {
		if strings.HasPrefix(s, value) {
			return true
		}
	}
	return false
}

// TrimPrefixAny removes the first of the given values that s starts with.
// Only one value is removed, even when the remainder starts with another match.
func TrimPrefixAny(s string, values []string) string {
	for _, value := range values {
		if strings.HasPrefix(s, value) {
			return s[len(value):]
		}
	}
	return s
}

// IndexOfAny returns the lowest index at which any of the given values occurs
// in s, together with the value found there. It returns -1 and "" when none occur.
func IndexOfAny(s string, values []string) (int, string) {
	index, match := -1, ""
	for _, value := range values {
		if value == "" {
			continue
		}
		i := strings.Index(s, value)
		if i < 0 {
			continue
		}
		if index < 0 || i < index {
			index, match = i, value
		}
	}
	return index, match
}

// FoldKey returns the case-folded form of a key so that names differing only
// in case compare equal as map keys.
func FoldKey(key string) string {
	return cases.Fold().String(key)
}
