package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/fvr-cli/fvr/internal/favro"
)

// fakeAPI serves fixture data and counts fetches so tests can assert that
// resolvers memoize.
type fakeAPI struct {
	orgs    []favro.Organization
	widgets []favro.Widget
	columns map[string][]favro.Column
	cards   map[string][]favro.Card
	tags    []favro.Tag
	users   []favro.User

	err error // returned by every call when set

	orgCalls    int
	widgetCalls int
	columnCalls int
	cardCalls   map[string]int
	tagCalls    int
	userCalls   int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		columns:   make(map[string][]favro.Column),
		cards:     make(map[string][]favro.Card),
		cardCalls: make(map[string]int),
	}
}

func (f *fakeAPI) Organizations(ctx context.Context) ([]favro.Organization, error) {
	f.orgCalls++
	return f.orgs, f.err
}

func (f *fakeAPI) Widgets(ctx context.Context, filter favro.WidgetFilter) ([]favro.Widget, error) {
	f.widgetCalls++
	return f.widgets, f.err
}

func (f *fakeAPI) Columns(ctx context.Context, widgetCommonID string) ([]favro.Column, error) {
	f.columnCalls++
	return f.columns[widgetCommonID], f.err
}

func (f *fakeAPI) Cards(ctx context.Context, filter favro.CardFilter) ([]favro.Card, error) {
	f.cardCalls[filter.WidgetCommonID]++
	return f.cards[filter.WidgetCommonID], f.err
}

func (f *fakeAPI) Tags(ctx context.Context) ([]favro.Tag, error) {
	f.tagCalls++
	return f.tags, f.err
}

func (f *fakeAPI) Users(ctx context.Context) ([]favro.User, error) {
	f.userCalls++
	return f.users, f.err
}

const (
	sprintID  = "5f1a2b3c4d5e6f7a8b9c0d1e"
	backlogID = "6a1b2c3d4e5f6a7b8c9d0e1f"
)

func sessionFixture() (*fakeAPI, *Session) {
	api := newFakeAPI()
	api.widgets = []favro.Widget{
		{WidgetCommonID: sprintID, Name: "Sprint", Type: favro.WidgetTypeBoard},
		{WidgetCommonID: backlogID, Name: "Backlog Review", Type: favro.WidgetTypeBoard},
	}
	api.columns[sprintID] = []favro.Column{
		{ColumnID: "aaaa2b3c4d5e6f7a8b9c0d1e", Name: "To Do", Position: 0},
		{ColumnID: "bbbb2b3c4d5e6f7a8b9c0d1e", Name: "Doing", Position: 1},
	}
	api.cards[sprintID] = []favro.Card{
		{CardID: "cafe00000000000000000001", CardCommonID: "feed00000000000000000001", SequentialID: 12, Name: "Fix login"},
		{CardID: "cafe00000000000000000002", CardCommonID: "feed00000000000000000002", SequentialID: 13, Name: "Write docs"},
	}
	api.cards[backlogID] = []favro.Card{
		{CardID: "cafe00000000000000000003", CardCommonID: "feed00000000000000000003", SequentialID: 12, Name: "Plan roadmap"},
		// Same card as #13 on Sprint, placed on a second board.
		{CardID: "cafe00000000000000000004", CardCommonID: "feed00000000000000000002", SequentialID: 7, Name: "Write docs"},
	}
	api.tags = []favro.Tag{
		{TagID: "dada00000000000000000001", Name: "bug"},
		{TagID: "dada00000000000000000002", Name: "infra"},
	}
	api.users = []favro.User{
		{UserID: "beef00000000000000000001", Name: "Freya", Email: "freya@example.com"},
		{UserID: "beef00000000000000000002", Name: "freya@example.com", Email: "other@example.com"},
	}
	return api, NewSession(api)
}

func TestBoards(t *testing.T) {
	ctx := context.Background()

	t.Run("by name case-insensitive", func(t *testing.T) {
		_, s := sessionFixture()
		board, err := s.Boards.Resolve(ctx, "sprint")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if board.WidgetCommonID != sprintID {
			t.Errorf("got %q, want %q", board.WidgetCommonID, sprintID)
		}
	})

	t.Run("by canonical id", func(t *testing.T) {
		_, s := sessionFixture()
		board, err := s.Boards.Resolve(ctx, backlogID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if board.Name != "Backlog Review" {
			t.Errorf("got %q, want %q", board.Name, "Backlog Review")
		}
	})

	t.Run("id shape never falls back to name", func(t *testing.T) {
		api, s := sessionFixture()
		// A board named like an ID must not match ID-shaped input.
		api.widgets = append(api.widgets, favro.Widget{
			WidgetCommonID: "0123456789abcdef01234567",
			Name:           "ffffffffffffffffffffffff",
		})
		_, err := s.Boards.Resolve(ctx, "ffffffffffffffffffffffff")
		if !IsNotFound(err) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("duplicate names are ambiguous", func(t *testing.T) {
		api, s := sessionFixture()
		api.widgets = append(api.widgets, favro.Widget{
			WidgetCommonID: "0123456789abcdef01234567",
			Name:           "SPRINT",
		})
		_, err := s.Boards.Resolve(ctx, "sprint")
		var ambiguous *AmbiguousError
		if !errors.As(err, &ambiguous) {
			t.Fatalf("expected AmbiguousError, got %v", err)
		}
		if len(ambiguous.Candidates) != 2 {
			t.Fatalf("expected 2 candidates, got %d", len(ambiguous.Candidates))
		}
		if ambiguous.Candidates[0].ID != sprintID || ambiguous.Candidates[1].ID != "0123456789abcdef01234567" {
			t.Errorf("wrong candidates: %+v", ambiguous.Candidates)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, s := sessionFixture()
		_, err := s.Boards.Resolve(ctx, "nope")
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if notFound.Kind != KindBoard || notFound.Raw != "nope" {
			t.Errorf("wrong error fields: %+v", notFound)
		}
	})

	t.Run("single fetch for repeated resolves", func(t *testing.T) {
		api, s := sessionFixture()
		for _, ref := range []string{"Sprint", sprintID, "Backlog Review"} {
			if _, err := s.Boards.Resolve(ctx, ref); err != nil {
				t.Fatalf("resolve %q: %v", ref, err)
			}
		}
		if api.widgetCalls != 1 {
			t.Errorf("widget fetches = %d, want 1", api.widgetCalls)
		}
	})

	t.Run("fetch error passes through", func(t *testing.T) {
		api, s := sessionFixture()
		api.err = &favro.APIError{Status: 500, Message: "boom"}
		_, err := s.Boards.Resolve(ctx, "Sprint")
		var apiErr *favro.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if IsNotFound(err) {
			t.Error("fetch failure must not read as not-found")
		}
	})
}

func TestColumns(t *testing.T) {
	ctx := context.Background()

	t.Run("by name within board scope", func(t *testing.T) {
		_, s := sessionFixture()
		column, err := s.Columns.Resolve(ctx, "doing", Scope{Board: "Sprint"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if column.ColumnID != "bbbb2b3c4d5e6f7a8b9c0d1e" {
			t.Errorf("got %q", column.ColumnID)
		}
	})

	t.Run("name without scope requires board", func(t *testing.T) {
		_, s := sessionFixture()
		_, err := s.Columns.Resolve(ctx, "Doing", Scope{})
		var scopeErr *ScopeRequiredError
		if !errors.As(err, &scopeErr) {
			t.Fatalf("expected ScopeRequiredError, got %v", err)
		}
		if scopeErr.Scope != KindBoard {
			t.Errorf("scope = %q, want board", scopeErr.Scope)
		}
	})

	t.Run("canonical id without scope passes through", func(t *testing.T) {
		api, s := sessionFixture()
		column, err := s.Columns.Resolve(ctx, "bbbb2b3c4d5e6f7a8b9c0d1e", Scope{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if column.ColumnID != "bbbb2b3c4d5e6f7a8b9c0d1e" {
			t.Errorf("got %q", column.ColumnID)
		}
		if api.columnCalls != 0 {
			t.Errorf("column fetches = %d, want 0", api.columnCalls)
		}
	})

	t.Run("canonical id with scope returns full record", func(t *testing.T) {
		_, s := sessionFixture()
		column, err := s.Columns.Resolve(ctx, "aaaa2b3c4d5e6f7a8b9c0d1e", Scope{Board: sprintID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if column.Name != "To Do" {
			t.Errorf("got %q, want %q", column.Name, "To Do")
		}
	})

	t.Run("single fetch per board", func(t *testing.T) {
		api, s := sessionFixture()
		for _, ref := range []string{"To Do", "Doing"} {
			if _, err := s.Columns.Resolve(ctx, ref, Scope{Board: "Sprint"}); err != nil {
				t.Fatalf("resolve %q: %v", ref, err)
			}
		}
		if api.columnCalls != 1 {
			t.Errorf("column fetches = %d, want 1", api.columnCalls)
		}
	})

	t.Run("bad board scope propagates", func(t *testing.T) {
		_, s := sessionFixture()
		_, err := s.Columns.Resolve(ctx, "Doing", Scope{Board: "nope"})
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if notFound.Kind != KindBoard {
			t.Errorf("kind = %q, want board", notFound.Kind)
		}
	})
}

func TestCards(t *testing.T) {
	ctx := context.Background()

	t.Run("sequential within board scope", func(t *testing.T) {
		_, s := sessionFixture()
		for _, ref := range []string{"#12", "12"} {
			card, err := s.Cards.Resolve(ctx, ref, Scope{Board: "Sprint"})
			if err != nil {
				t.Fatalf("resolve %q: %v", ref, err)
			}
			if card.Name != "Fix login" {
				t.Errorf("resolve %q: got %q", ref, card.Name)
			}
		}
	})

	t.Run("sequential collides across boards when unscoped", func(t *testing.T) {
		_, s := sessionFixture()
		_, err := s.Cards.Resolve(ctx, "#12", Scope{})
		var ambiguous *AmbiguousError
		if !errors.As(err, &ambiguous) {
			t.Fatalf("expected AmbiguousError, got %v", err)
		}
		if len(ambiguous.Candidates) != 2 {
			t.Errorf("expected 2 candidates, got %d", len(ambiguous.Candidates))
		}
	})

	t.Run("multi-board card is not ambiguous with itself", func(t *testing.T) {
		_, s := sessionFixture()
		card, err := s.Cards.Resolve(ctx, "Write docs", Scope{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if card.CardCommonID != "feed00000000000000000002" {
			t.Errorf("got %q", card.CardCommonID)
		}
	})

	t.Run("unscoped id resolves every placement", func(t *testing.T) {
		// The card behind cafe...04 also sits on the Sprint board, which
		// enumerates first; its second placement's cardId must still resolve.
		_, s := sessionFixture()
		card, err := s.Cards.Resolve(ctx, "cafe00000000000000000004", Scope{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if card.CardID != "cafe00000000000000000004" {
			t.Errorf("got %q", card.CardID)
		}
		if card.SequentialID != 7 {
			t.Errorf("got #%d, want #7", card.SequentialID)
		}
	})

	t.Run("unscoped commonId collapses placements", func(t *testing.T) {
		_, s := sessionFixture()
		card, err := s.Cards.Resolve(ctx, "feed00000000000000000002", Scope{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if card.CardCommonID != "feed00000000000000000002" {
			t.Errorf("got %q", card.CardCommonID)
		}
	})

	t.Run("unscoped sequential reaches later placements", func(t *testing.T) {
		_, s := sessionFixture()
		card, err := s.Cards.Resolve(ctx, "#7", Scope{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if card.CardID != "cafe00000000000000000004" {
			t.Errorf("got %q", card.CardID)
		}
	})

	t.Run("by cardId", func(t *testing.T) {
		_, s := sessionFixture()
		card, err := s.Cards.Resolve(ctx, "cafe00000000000000000001", Scope{Board: "Sprint"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if card.SequentialID != 12 {
			t.Errorf("got #%d, want #12", card.SequentialID)
		}
	})

	t.Run("by cardCommonId", func(t *testing.T) {
		_, s := sessionFixture()
		card, err := s.Cards.Resolve(ctx, "feed00000000000000000001", Scope{Board: "Sprint"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if card.CardID != "cafe00000000000000000001" {
			t.Errorf("got %q", card.CardID)
		}
	})

	t.Run("name case-insensitive", func(t *testing.T) {
		_, s := sessionFixture()
		card, err := s.Cards.Resolve(ctx, "fix login", Scope{Board: "Sprint"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if card.SequentialID != 12 {
			t.Errorf("got #%d, want #12", card.SequentialID)
		}
	})

	t.Run("scoped search stays on the board", func(t *testing.T) {
		_, s := sessionFixture()
		_, err := s.Cards.Resolve(ctx, "Plan roadmap", Scope{Board: "Sprint"})
		if !IsNotFound(err) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("single fetch per board across resolves", func(t *testing.T) {
		api, s := sessionFixture()
		if _, err := s.Cards.Resolve(ctx, "#12", Scope{Board: "Sprint"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := s.Cards.Resolve(ctx, "Write docs", Scope{Board: "Sprint"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if api.cardCalls[sprintID] != 1 {
			t.Errorf("card fetches = %d, want 1", api.cardCalls[sprintID])
		}
	})

	t.Run("unscoped search reuses scoped cache", func(t *testing.T) {
		api, s := sessionFixture()
		if _, err := s.Cards.Resolve(ctx, "#13", Scope{Board: "Sprint"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := s.Cards.Resolve(ctx, "Plan roadmap", Scope{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if api.cardCalls[sprintID] != 1 {
			t.Errorf("card fetches for sprint board = %d, want 1", api.cardCalls[sprintID])
		}
		if api.cardCalls[backlogID] != 1 {
			t.Errorf("card fetches for backlog board = %d, want 1", api.cardCalls[backlogID])
		}
	})

	t.Run("fetch error passes through", func(t *testing.T) {
		api, s := sessionFixture()
		api.err = &favro.AuthError{Status: 401, Message: "unauthorized"}
		_, err := s.Cards.Resolve(ctx, "#12", Scope{})
		if !favro.IsAuthError(err) {
			t.Fatalf("expected AuthError, got %v", err)
		}
	})
}

func TestUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("email beats identical display name", func(t *testing.T) {
		// One user's display name equals another user's email; the email
		// tier must win for email-shaped input.
		_, s := sessionFixture()
		user, err := s.Users.Resolve(ctx, "freya@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.UserID != "beef00000000000000000001" {
			t.Errorf("got %q, want the user whose email matched", user.UserID)
		}
	})

	t.Run("by name", func(t *testing.T) {
		_, s := sessionFixture()
		user, err := s.Users.Resolve(ctx, "freya")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.UserID != "beef00000000000000000001" {
			t.Errorf("got %q", user.UserID)
		}
	})

	t.Run("by id", func(t *testing.T) {
		_, s := sessionFixture()
		user, err := s.Users.Resolve(ctx, "beef00000000000000000002")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != "other@example.com" {
			t.Errorf("got %q", user.Email)
		}
	})

	t.Run("email-shaped falls back to name tier", func(t *testing.T) {
		// No email matches but a display name does.
		api, s := sessionFixture()
		api.users = append(api.users, favro.User{
			UserID: "beef00000000000000000003",
			Name:   "billing@example.com",
			Email:  "carl@example.com",
		})
		user, err := s.Users.Resolve(ctx, "billing@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.UserID != "beef00000000000000000003" {
			t.Errorf("got %q", user.UserID)
		}
	})
}

func TestTagsAndOrganizations(t *testing.T) {
	ctx := context.Background()

	t.Run("tag by name", func(t *testing.T) {
		api, s := sessionFixture()
		tag, err := s.Tags.Resolve(ctx, "BUG")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tag.TagID != "dada00000000000000000001" {
			t.Errorf("got %q", tag.TagID)
		}
		if _, err := s.Tags.Resolve(ctx, "infra"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if api.tagCalls != 1 {
			t.Errorf("tag fetches = %d, want 1", api.tagCalls)
		}
	})

	t.Run("organization by id and name", func(t *testing.T) {
		api, s := sessionFixture()
		api.orgs = []favro.Organization{
			{OrganizationID: "0a0a0a0a0a0a0a0a0a0a0a0a", Name: "Acme"},
		}
		org, err := s.Organizations.Resolve(ctx, "acme")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if org.OrganizationID != "0a0a0a0a0a0a0a0a0a0a0a0a" {
			t.Errorf("got %q", org.OrganizationID)
		}
		if _, err := s.Organizations.Resolve(ctx, "0a0a0a0a0a0a0a0a0a0a0a0a"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if api.orgCalls != 1 {
			t.Errorf("org fetches = %d, want 1", api.orgCalls)
		}
	})
}

func TestSessionSharesBoardCache(t *testing.T) {
	ctx := context.Background()
	api, s := sessionFixture()

	if _, err := s.Boards.Resolve(ctx, "Sprint"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Columns.Resolve(ctx, "Doing", Scope{Board: "Sprint"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Cards.Resolve(ctx, "#12", Scope{Board: "Sprint"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.widgetCalls != 1 {
		t.Errorf("widget fetches = %d, want 1", api.widgetCalls)
	}
}

func TestResolveIDRoundTrip(t *testing.T) {
	// Resolving by name, then by the ID that came back, lands on the same
	// entity without ambiguity.
	ctx := context.Background()
	_, s := sessionFixture()

	byName, err := s.Boards.Resolve(ctx, "Sprint")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byID, err := s.Boards.Resolve(ctx, byName.WidgetCommonID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byID.WidgetCommonID != byName.WidgetCommonID {
		t.Errorf("round trip diverged: %q vs %q", byID.WidgetCommonID, byName.WidgetCommonID)
	}
}
