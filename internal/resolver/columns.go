package resolver

import (
	"context"

	"github.com/fvr-cli/fvr/internal/favro"
)

// Columns resolves column references. Column names are only meaningful
// within one board, so name lookups require a board scope; canonical IDs
// never do.
type Columns struct {
	api    API
	boards *Boards
	cache  map[string][]favro.Column
}

// NewColumns creates a column resolver that resolves board scopes through
// boards.
func NewColumns(api API, boards *Boards) *Columns {
	return &Columns{api: api, boards: boards, cache: make(map[string][]favro.Column)}
}

func (r *Columns) list(ctx context.Context, widgetCommonID string) ([]favro.Column, error) {
	if cached, ok := r.cache[widgetCommonID]; ok {
		return cached, nil
	}
	columns, err := r.api.Columns(ctx, widgetCommonID)
	if err != nil {
		return nil, err
	}
	r.cache[widgetCommonID] = columns
	return columns, nil
}

// Resolve resolves raw to exactly one column within scope's board.
//
// An ID-shaped reference without a board scope is returned as an ID-only
// column record: the ID is already unambiguous and the API cannot list
// columns without a board to fetch the rest from.
func (r *Columns) Resolve(ctx context.Context, raw string, scope Scope) (*favro.Column, error) {
	strategies := Classify(KindColumn, raw)
	idShaped := len(strategies) == 1 && strategies[0] == StrategyID

	if scope.Board == "" {
		if idShaped {
			return &favro.Column{ColumnID: raw}, nil
		}
		return nil, &ScopeRequiredError{Kind: KindColumn, Raw: raw, Scope: KindBoard}
	}

	board, err := r.boards.Resolve(ctx, scope.Board)
	if err != nil {
		return nil, err
	}

	columns, err := r.list(ctx, board.WidgetCommonID)
	if err != nil {
		return nil, err
	}

	for _, strategy := range strategies {
		var matches []favro.Column
		switch strategy {
		case StrategyID:
			matches = matchExact(columns, func(c favro.Column) string { return c.ColumnID }, raw)
		case StrategyName:
			matches = matchFold(columns, func(c favro.Column) string { return c.Name }, raw)
		}
		if len(matches) > 0 {
			column, err := decide(KindColumn, raw, matches, func(c favro.Column) Candidate {
				return Candidate{ID: c.ColumnID, Name: c.Name}
			})
			if err != nil {
				return nil, err
			}
			return &column, nil
		}
	}

	return nil, &NotFoundError{Kind: KindColumn, Raw: raw}
}
