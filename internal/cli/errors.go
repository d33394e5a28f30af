package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Session errors
	ErrNotLoggedIn    = "NOT_LOGGED_IN"
	ErrNoOrganization = "NO_ORGANIZATION"
	ErrConfigError    = "CONFIG_ERROR"

	// Resolution errors
	ErrNotFound      = "NOT_FOUND"
	ErrAmbiguous     = "AMBIGUOUS"
	ErrScopeRequired = "SCOPE_REQUIRED"

	// Upstream errors
	ErrAuth = "AUTH_ERROR"
	ErrAPI  = "API_ERROR"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"
	ErrAborted      = "ABORTED"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
