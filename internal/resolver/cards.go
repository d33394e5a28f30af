package resolver

import (
	"context"
	"fmt"

	"github.com/fvr-cli/fvr/internal/favro"
)

// Cards resolves card references by canonical ID, sequential number, or
// name. With a board scope the search is limited to that board; without one
// it spans every board in the organization, which costs one cards fetch per
// board. Sequential numbers are only unique per board, so an unscoped
// sequential lookup can legitimately be ambiguous.
type Cards struct {
	api     API
	boards  *Boards
	byBoard map[string][]favro.Card
}

// NewCards creates a card resolver that resolves board scopes through
// boards.
func NewCards(api API, boards *Boards) *Cards {
	return &Cards{api: api, boards: boards, byBoard: make(map[string][]favro.Card)}
}

func (r *Cards) boardCards(ctx context.Context, widgetCommonID string) ([]favro.Card, error) {
	if cached, ok := r.byBoard[widgetCommonID]; ok {
		return cached, nil
	}
	cards, err := r.api.Cards(ctx, favro.CardFilter{WidgetCommonID: widgetCommonID})
	if err != nil {
		return nil, err
	}
	r.byBoard[widgetCommonID] = cards
	return cards, nil
}

// allCards aggregates cards across every board, keeping every placement:
// each placement carries its own canonical cardId and those must all stay
// resolvable.
func (r *Cards) allCards(ctx context.Context) ([]favro.Card, error) {
	boards, err := r.boards.All(ctx)
	if err != nil {
		return nil, err
	}

	var all []favro.Card
	for _, board := range boards {
		cards, err := r.boardCards(ctx, board.WidgetCommonID)
		if err != nil {
			return nil, err
		}
		all = append(all, cards...)
	}
	return all, nil
}

// dedupeByCommonID keeps one placement per cardCommonId. Applied to the
// match set of an unscoped search so a card placed on several boards is
// never ambiguous with itself; distinct cards keep colliding.
func dedupeByCommonID(cards []favro.Card) []favro.Card {
	seen := make(map[string]bool, len(cards))
	out := cards[:0:0]
	for _, c := range cards {
		if c.CardCommonID != "" {
			if seen[c.CardCommonID] {
				continue
			}
			seen[c.CardCommonID] = true
		}
		out = append(out, c)
	}
	return out
}

// Resolve resolves raw to exactly one card, searching scope's board when
// given and every board otherwise.
func (r *Cards) Resolve(ctx context.Context, raw string, scope Scope) (*favro.Card, error) {
	var candidates []favro.Card
	var err error
	if scope.Board != "" {
		board, berr := r.boards.Resolve(ctx, scope.Board)
		if berr != nil {
			return nil, berr
		}
		candidates, err = r.boardCards(ctx, board.WidgetCommonID)
	} else {
		candidates, err = r.allCards(ctx)
	}
	if err != nil {
		return nil, err
	}

	for _, strategy := range Classify(KindCard, raw) {
		var matches []favro.Card
		switch strategy {
		case StrategyID:
			// A card carries two canonical IDs: the per-placement cardId
			// and the board-spanning cardCommonId. Either resolves it.
			matches = matchExact(candidates, func(c favro.Card) string { return c.CardID }, raw)
			if len(matches) == 0 {
				matches = matchExact(candidates, func(c favro.Card) string { return c.CardCommonID }, raw)
			}
		case StrategySequential:
			n, _ := ParseSequential(raw)
			for _, c := range candidates {
				if c.SequentialID == n {
					matches = append(matches, c)
				}
			}
		case StrategyName:
			matches = matchFold(candidates, func(c favro.Card) string { return c.Name }, raw)
		}
		if scope.Board == "" && len(matches) > 1 {
			matches = dedupeByCommonID(matches)
		}
		if len(matches) > 0 {
			card, err := decide(KindCard, raw, matches, func(c favro.Card) Candidate {
				return Candidate{ID: c.CardID, Name: fmt.Sprintf("#%d %s", c.SequentialID, c.Name)}
			})
			if err != nil {
				return nil, err
			}
			return &card, nil
		}
	}

	return nil, &NotFoundError{Kind: KindCard, Raw: raw}
}
