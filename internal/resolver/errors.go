package resolver

import (
	"fmt"
	"strings"
)

// Candidate names one entity in an ambiguous match so the user can retry
// with its canonical ID.
type Candidate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NotFoundError is returned when no strategy produced a candidate.
type NotFoundError struct {
	Kind Kind
	Raw  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Raw)
}

// AmbiguousError is returned when a strategy matched more than one entity.
// Candidates holds every match; the caller must surface them, never pick one.
type AmbiguousError struct {
	Kind       Kind
	Raw        string
	Candidates []Candidate
}

func (e *AmbiguousError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = fmt.Sprintf("%s (%s)", c.ID, c.Name)
	}
	return fmt.Sprintf("%s '%s' is ambiguous, matches: %s", e.Kind, e.Raw, strings.Join(names, ", "))
}

// ScopeRequiredError is returned when a name lookup needs a parent scope that
// was not supplied. Canonical-ID input never takes this path.
type ScopeRequiredError struct {
	Kind  Kind
	Raw   string
	Scope Kind
}

func (e *ScopeRequiredError) Error() string {
	return fmt.Sprintf("resolving %s '%s' by name requires a %s", e.Kind, e.Raw, e.Scope)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsAmbiguous reports whether err is an AmbiguousError.
func IsAmbiguous(err error) bool {
	_, ok := err.(*AmbiguousError)
	return ok
}

// IsScopeRequired reports whether err is a ScopeRequiredError.
func IsScopeRequired(err error) bool {
	_, ok := err.(*ScopeRequiredError)
	return ok
}
