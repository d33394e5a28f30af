package resolver

import (
	"context"

	"github.com/fvr-cli/fvr/internal/favro"
)

// Boards resolves board references by canonical widgetCommonId or name.
// Backlogs resolve the same way; both are widgets to the API.
type Boards struct {
	api     API
	cache   []favro.Widget
	fetched bool
}

// NewBoards creates a board resolver.
func NewBoards(api API) *Boards {
	return &Boards{api: api}
}

// All returns every widget in the organization, fetching at most once for
// the lifetime of the resolver. The card resolver uses this for unscoped
// searches.
func (r *Boards) All(ctx context.Context) ([]favro.Widget, error) {
	if !r.fetched {
		widgets, err := r.api.Widgets(ctx, favro.WidgetFilter{})
		if err != nil {
			return nil, err
		}
		r.cache = widgets
		r.fetched = true
	}
	return r.cache, nil
}

// Resolve resolves raw to exactly one board.
func (r *Boards) Resolve(ctx context.Context, raw string) (*favro.Widget, error) {
	widgets, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	for _, strategy := range Classify(KindBoard, raw) {
		var matches []favro.Widget
		switch strategy {
		case StrategyID:
			matches = matchExact(widgets, func(w favro.Widget) string { return w.WidgetCommonID }, raw)
		case StrategyName:
			matches = matchFold(widgets, func(w favro.Widget) string { return w.Name }, raw)
		}
		if len(matches) > 0 {
			board, err := decide(KindBoard, raw, matches, func(w favro.Widget) Candidate {
				return Candidate{ID: w.WidgetCommonID, Name: w.Name}
			})
			if err != nil {
				return nil, err
			}
			return &board, nil
		}
	}

	return nil, &NotFoundError{Kind: KindBoard, Raw: raw}
}
