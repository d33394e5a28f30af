package resolver

import (
	"context"

	"github.com/fvr-cli/fvr/internal/favro"
)

// Tags resolves tag references by canonical ID or name. Tags are
// organization-wide; a tag lookup never needs a board.
type Tags struct {
	api     API
	cache   []favro.Tag
	fetched bool
}

// NewTags creates a tag resolver.
func NewTags(api API) *Tags {
	return &Tags{api: api}
}

func (r *Tags) list(ctx context.Context) ([]favro.Tag, error) {
	if !r.fetched {
		tags, err := r.api.Tags(ctx)
		if err != nil {
			return nil, err
		}
		r.cache = tags
		r.fetched = true
	}
	return r.cache, nil
}

// Resolve resolves raw to exactly one tag.
func (r *Tags) Resolve(ctx context.Context, raw string) (*favro.Tag, error) {
	tags, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	for _, strategy := range Classify(KindTag, raw) {
		var matches []favro.Tag
		switch strategy {
		case StrategyID:
			matches = matchExact(tags, func(t favro.Tag) string { return t.TagID }, raw)
		case StrategyName:
			matches = matchFold(tags, func(t favro.Tag) string { return t.Name }, raw)
		}
		if len(matches) > 0 {
			tag, err := decide(KindTag, raw, matches, func(t favro.Tag) Candidate {
				return Candidate{ID: t.TagID, Name: t.Name}
			})
			if err != nil {
				return nil, err
			}
			return &tag, nil
		}
	}

	return nil, &NotFoundError{Kind: KindTag, Raw: raw}
}
