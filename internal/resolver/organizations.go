package resolver

import (
	"context"

	"github.com/fvr-cli/fvr/internal/favro"
)

// Organizations resolves organization references by canonical ID or name.
type Organizations struct {
	api     API
	cache   []favro.Organization
	fetched bool
}

// NewOrganizations creates an organization resolver.
func NewOrganizations(api API) *Organizations {
	return &Organizations{api: api}
}

func (r *Organizations) list(ctx context.Context) ([]favro.Organization, error) {
	if !r.fetched {
		orgs, err := r.api.Organizations(ctx)
		if err != nil {
			return nil, err
		}
		r.cache = orgs
		r.fetched = true
	}
	return r.cache, nil
}

// Resolve resolves raw to exactly one organization.
func (r *Organizations) Resolve(ctx context.Context, raw string) (*favro.Organization, error) {
	orgs, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	for _, strategy := range Classify(KindOrganization, raw) {
		var matches []favro.Organization
		switch strategy {
		case StrategyID:
			matches = matchExact(orgs, func(o favro.Organization) string { return o.OrganizationID }, raw)
		case StrategyName:
			matches = matchFold(orgs, func(o favro.Organization) string { return o.Name }, raw)
		}
		if len(matches) > 0 {
			org, err := decide(KindOrganization, raw, matches, func(o favro.Organization) Candidate {
				return Candidate{ID: o.OrganizationID, Name: o.Name}
			})
			if err != nil {
				return nil, err
			}
			return &org, nil
		}
	}

	return nil, &NotFoundError{Kind: KindOrganization, Raw: raw}
}
