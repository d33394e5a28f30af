package resolver

import (
	"context"

	"github.com/fvr-cli/fvr/internal/favro"
)

// Users resolves user references by canonical ID, email, or name, in that
// priority. The organization scope is implicit in the API session.
type Users struct {
	api     API
	cache   []favro.User
	fetched bool
}

// NewUsers creates a user resolver.
func NewUsers(api API) *Users {
	return &Users{api: api}
}

func (r *Users) list(ctx context.Context) ([]favro.User, error) {
	if !r.fetched {
		users, err := r.api.Users(ctx)
		if err != nil {
			return nil, err
		}
		r.cache = users
		r.fetched = true
	}
	return r.cache, nil
}

// Resolve resolves raw to exactly one user. Email-shaped input matches the
// email field before any coincidentally identical display name.
func (r *Users) Resolve(ctx context.Context, raw string) (*favro.User, error) {
	users, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	for _, strategy := range Classify(KindUser, raw) {
		var matches []favro.User
		switch strategy {
		case StrategyID:
			matches = matchExact(users, func(u favro.User) string { return u.UserID }, raw)
		case StrategyEmail:
			matches = matchFold(users, func(u favro.User) string { return u.Email }, raw)
		case StrategyName:
			matches = matchFold(users, func(u favro.User) string { return u.Name }, raw)
		}
		if len(matches) > 0 {
			user, err := decide(KindUser, raw, matches, func(u favro.User) Candidate {
				return Candidate{ID: u.UserID, Name: u.Name}
			})
			if err != nil {
				return nil, err
			}
			return &user, nil
		}
	}

	return nil, &NotFoundError{Kind: KindUser, Raw: raw}
}
