package resolver

import (
	"strconv"
	"strings"
)

// Strategy is one matching tier. Strategies run in the order Classify
// returns them; the first tier with at least one match wins and later tiers
// are never consulted.
type Strategy int

const (
	// StrategyID matches the canonical ID exactly, case-sensitively.
	StrategyID Strategy = iota
	// StrategySequential matches a card's per-board sequential number.
	StrategySequential
	// StrategyEmail matches a user's email, case-insensitively.
	StrategyEmail
	// StrategyName matches the display name, case-insensitively.
	StrategyName
)

func (s Strategy) String() string {
	switch s {
	case StrategyID:
		return "id"
	case StrategySequential:
		return "sequential"
	case StrategyEmail:
		return "email"
	case StrategyName:
		return "name"
	}
	return "unknown"
}

const nativeIDLength = 24

// IsNativeID reports whether raw has the service's canonical ID shape: a
// 24-character lowercase hex token. Digits-only input is excluded so a long
// sequential reference can never be mistaken for an ID.
func IsNativeID(raw string) bool {
	if len(raw) != nativeIDLength {
		return false
	}
	hasLetter := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
			hasLetter = true
		default:
			return false
		}
	}
	return hasLetter
}

// ParseSequential parses a sequential card reference: "#123" or bare "123".
func ParseSequential(raw string) (int, bool) {
	digits := strings.TrimPrefix(raw, "#")
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Classify inspects a raw identifier and returns the strategies that apply
// to it for the given entity kind, in priority order.
//
// ID-shaped input gets StrategyID alone: a canonical ID is never
// reinterpreted as a name. Sequential references only exist for cards.
// Email matching runs before name matching for users when the input looks
// like an address.
func Classify(kind Kind, raw string) []Strategy {
	if IsNativeID(raw) {
		return []Strategy{StrategyID}
	}
	if kind == KindCard {
		if _, ok := ParseSequential(raw); ok {
			return []Strategy{StrategySequential}
		}
	}
	if kind == KindUser && strings.Contains(raw, "@") {
		return []Strategy{StrategyEmail, StrategyName}
	}
	return []Strategy{StrategyName}
}
