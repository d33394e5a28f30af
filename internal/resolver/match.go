package resolver

import "strings"

// matchExact returns the candidates whose key equals raw, byte for byte.
// Used for canonical IDs, which are opaque case-sensitive tokens.
func matchExact[T any](candidates []T, key func(T) string, raw string) []T {
	var out []T
	for _, c := range candidates {
		if key(c) == raw {
			out = append(out, c)
		}
	}
	return out
}

// matchFold returns the candidates whose key equals raw under Unicode case
// folding. Used for names and emails.
func matchFold[T any](candidates []T, key func(T) string, raw string) []T {
	var out []T
	for _, c := range candidates {
		if strings.EqualFold(key(c), raw) {
			out = append(out, c)
		}
	}
	return out
}

// decide turns a match list into a single entity or a typed failure:
// exactly one candidate succeeds, zero is NotFound, many is Ambiguous with
// every candidate attached.
func decide[T any](kind Kind, raw string, matches []T, describe func(T) Candidate) (T, error) {
	var zero T
	switch len(matches) {
	case 0:
		return zero, &NotFoundError{Kind: kind, Raw: raw}
	case 1:
		return matches[0], nil
	default:
		candidates := make([]Candidate, len(matches))
		for i, m := range matches {
			candidates[i] = describe(m)
		}
		return zero, &AmbiguousError{Kind: kind, Raw: raw, Candidates: candidates}
	}
}
