package cli

import (
	"fmt"
	"strings"

	"github.com/fvr-cli/fvr/internal/config"
	"github.com/fvr-cli/fvr/internal/favro"
	"github.com/fvr-cli/fvr/internal/resolver"
)

// session bundles the API client and the per-command resolvers. It is built
// fresh for every command invocation; resolver caches live exactly that
// long.
type session struct {
	client  *favro.Client
	resolve *resolver.Session
	email   string
	orgID   string
	boardID string // selected default board, may be empty
}

// newSession builds an authenticated session. With requireOrg, a selected
// organization is mandatory; commands that operate on organization data all
// need it.
func newSession(requireOrg bool) (*session, error) {
	credsPath, err := config.CredentialsPath()
	if err != nil {
		return nil, handleError(ErrConfigError, err, "")
	}
	creds, err := config.LoadCredentials(credsPath)
	if err != nil {
		return nil, handleError(ErrConfigError, err, "")
	}
	if creds == nil {
		return nil, handleErrorMsg(ErrNotLoggedIn, "not logged in", "Run 'fvr auth login' first")
	}

	state := getState()
	if requireOrg && state.OrganizationID == "" {
		return nil, handleErrorMsg(ErrNoOrganization, "no organization selected", "Run 'fvr org select <id>' first")
	}

	client := favro.NewClient(creds.Email, creds.Token, state.OrganizationID)

	return &session{
		client:  client,
		resolve: resolver.NewSession(client),
		email:   creds.Email,
		orgID:   state.OrganizationID,
		boardID: state.BoardID,
	}, nil
}

// boardScope returns the effective board reference: the flag value when
// given, else the selected default board, else empty.
func (s *session) boardScope(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return s.boardID
}

// requireBoardRef is boardScope for commands that cannot work without a
// board. It fails before any fetch happens, so a missing board reads as a
// usage error rather than a lookup failure.
func (s *session) requireBoardRef(flagValue string) (string, error) {
	ref := s.boardScope(flagValue)
	if ref == "" {
		return "", handleErrorMsg(ErrInvalidInput, "board is required",
			"Use --board or set a default with 'fvr board select <id>'")
	}
	return ref, nil
}

// handleFetchError maps an API-level failure to CLI output. These are kept
// distinct from resolution failures so "could not reach the service" never
// reads as "entity does not exist".
func handleFetchError(err error) error {
	if favro.IsAuthError(err) {
		return handleError(ErrAuth, err, "Run 'fvr auth login' to refresh your credentials")
	}
	return handleError(ErrAPI, fmt.Errorf("API error: %w", err), "")
}

// handleResolveError maps a resolution failure to CLI output with the
// matching error code. Ambiguous failures carry every candidate, both in
// the text message and in the JSON error details.
func handleResolveError(err error) error {
	switch e := err.(type) {
	case *resolver.NotFoundError:
		return handleErrorMsg(ErrNotFound, e.Error(), "Check the reference, or use a canonical ID")
	case *resolver.AmbiguousError:
		return handleErrorWithDetails(ErrAmbiguous,
			ambiguousMessage(e),
			"Retry with one of the listed IDs",
			map[string]interface{}{"candidates": e.Candidates})
	case *resolver.ScopeRequiredError:
		return handleErrorMsg(ErrScopeRequired, e.Error(),
			fmt.Sprintf("Pass --%s, or select a default with 'fvr %s select <id>'", e.Scope, e.Scope))
	default:
		return handleFetchError(err)
	}
}

// ambiguousMessage formats an ambiguous match with one candidate per line.
func ambiguousMessage(e *resolver.AmbiguousError) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s '%s' is ambiguous, matches:", e.Kind, e.Raw)
	for _, c := range e.Candidates {
		fmt.Fprintf(&sb, "\n  %s  %s", c.ID, c.Name)
	}
	return sb.String()
}
