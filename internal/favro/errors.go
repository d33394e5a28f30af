package favro

import "fmt"

// AuthError indicates the API rejected the credentials (401/403).
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("authentication failed (HTTP %d): check your email and API token", e.Status)
}

// APIError is any other non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	_, ok := err.(*AuthError)
	return ok
}
