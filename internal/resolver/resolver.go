// Package resolver turns user-typed identifiers into canonical Favro
// entities.
//
// A raw identifier can be a canonical ID, a card's sequential number
// ("#123" or "123"), an email address, or a display name. Each entity kind
// has its own resolver that classifies the input, fetches the candidate
// list for the active scope, and applies exact-match strategies in priority
// order. Zero matches is NotFound, more than one is Ambiguous; a resolver
// never guesses.
//
// Resolvers memoize fetched candidate lists per scope for their own
// lifetime, which is a single command invocation. Fetch-level failures
// (auth, network) pass through unchanged so callers can tell "does not
// exist" apart from "could not reach the service".
package resolver

import (
	"context"

	"github.com/fvr-cli/fvr/internal/favro"
)

// Kind identifies an entity kind in errors and messages.
type Kind string

const (
	KindOrganization Kind = "organization"
	KindBoard        Kind = "board"
	KindColumn       Kind = "column"
	KindCard         Kind = "card"
	KindTag          Kind = "tag"
	KindUser         Kind = "user"
)

// API is the read surface the resolvers consume. *favro.Client satisfies it;
// tests substitute counting fakes.
type API interface {
	Organizations(ctx context.Context) ([]favro.Organization, error)
	Widgets(ctx context.Context, filter favro.WidgetFilter) ([]favro.Widget, error)
	Columns(ctx context.Context, widgetCommonID string) ([]favro.Column, error)
	Cards(ctx context.Context, filter favro.CardFilter) ([]favro.Card, error)
	Tags(ctx context.Context) ([]favro.Tag, error)
	Users(ctx context.Context) ([]favro.User, error)
}

// Scope carries the parent identifiers a resolve call may need. Board may be
// a canonical widgetCommonId or any raw board reference; the child resolver
// resolves it through its board resolver first and propagates failures
// unchanged.
type Scope struct {
	Board string
}

// Session bundles one resolver per entity kind against a shared API client.
// Column and card resolvers share the session's board resolver so a board
// scope resolved once is not fetched again.
type Session struct {
	Organizations *Organizations
	Boards        *Boards
	Columns       *Columns
	Cards         *Cards
	Tags          *Tags
	Users         *Users
}

// NewSession creates resolvers for every entity kind.
func NewSession(api API) *Session {
	boards := NewBoards(api)
	return &Session{
		Organizations: NewOrganizations(api),
		Boards:        boards,
		Columns:       NewColumns(api, boards),
		Cards:         NewCards(api, boards),
		Tags:          NewTags(api),
		Users:         NewUsers(api),
	}
}
