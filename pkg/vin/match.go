package vin

import "strings"

// Matches reports whether the VIN candidate fits pattern, where each run of
// wildcards in pattern matches any run of characters, including none.
// Both inputs are normalized first. An empty pattern matches nothing.
func Matches(pattern, candidate string) bool {
	pattern, candidate = Normalize(pattern), Normalize(candidate)
	if pattern == "" {
		return false
	}

	parts := strings.Split(pattern, string(Wildcard))
	if len(parts) == 1 {
		return pattern == candidate
	}

	first, last := parts[0], parts[len(parts)-1]
	if !strings.HasPrefix(candidate, first) {
		return false
	}
	rest := candidate[len(first):]
	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
	}
	return strings.HasSuffix(rest, last)
}

// LikePattern converts a normalized VIN pattern into an SQL LIKE pattern.
// Runs of wildcards become a single '%'; '_' and '%' never survive validation
// so no escaping is needed for valid input.
func LikePattern(pattern string) string {
	pattern = Normalize(pattern)
	var b strings.Builder
	b.Grow(len(pattern))
	prevWildcard := false
	for _, r := range pattern {
		if r == Wildcard {
			if !prevWildcard {
				b.WriteByte('%')
			}
			prevWildcard = true
			continue
		}
		prevWildcard = false
		b.WriteRune(r)
	}
	return b.String()
}
