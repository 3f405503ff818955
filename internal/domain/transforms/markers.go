// Package transforms provides the default literal predicates and value transforms.
package transforms

import "strings"

// DefaultMarkers are the prefixes that tag a message key for replacement.
var DefaultMarkers = []string{"N/", "B/"}

// Markers returns a predicate accepting values that start with one of prefixes.
// With no prefixes it uses DefaultMarkers.
func Markers(prefixes ...string) func(string) bool {
	if len(prefixes) == 0 {
		prefixes = DefaultMarkers
	}

	prefixes = append([]string(nil), prefixes...)

	return func(value string) bool {
		for _, prefix := range prefixes {
			if strings.HasPrefix(value, prefix) {
				return true
			}
		}

		return false
	}
}

// Any accepts every string literal.
func Any(string) bool {
	return true
}
