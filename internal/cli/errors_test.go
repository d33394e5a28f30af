package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/fvr-cli/fvr/internal/favro"
	"github.com/fvr-cli/fvr/internal/resolver"
)

func TestHandleErrorTextMode(t *testing.T) {
	jsonOutput = false

	err := handleErrorMsg(ErrNotFound, "board 'nope' not found", "Check the reference")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, errSilent) {
		t.Error("text mode must return a printable error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "board 'nope' not found") || !strings.Contains(msg, "Check the reference") {
		t.Errorf("got %q", msg)
	}
}

func TestHandleErrorJSONMode(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	err := handleErrorMsg(ErrNotFound, "board 'nope' not found", "")
	if !errors.Is(err, errSilent) {
		t.Errorf("JSON mode must return the silent sentinel, got %v", err)
	}
}

func TestHandleResolveErrorCodes(t *testing.T) {
	jsonOutput = false

	t.Run("ambiguous lists candidates", func(t *testing.T) {
		err := handleResolveError(&resolver.AmbiguousError{
			Kind: resolver.KindBoard,
			Raw:  "sprint",
			Candidates: []resolver.Candidate{
				{ID: "5f1a2b3c4d5e6f7a8b9c0d1e", Name: "Sprint"},
				{ID: "6a1b2c3d4e5f6a7b8c9d0e1f", Name: "SPRINT"},
			},
		})
		msg := err.Error()
		for _, want := range []string{"ambiguous", "5f1a2b3c4d5e6f7a8b9c0d1e", "6a1b2c3d4e5f6a7b8c9d0e1f"} {
			if !strings.Contains(msg, want) {
				t.Errorf("message missing %q: %q", want, msg)
			}
		}
	})

	t.Run("scope required suggests the flag", func(t *testing.T) {
		err := handleResolveError(&resolver.ScopeRequiredError{
			Kind:  resolver.KindColumn,
			Raw:   "Doing",
			Scope: resolver.KindBoard,
		})
		if !strings.Contains(err.Error(), "--board") {
			t.Errorf("got %q", err.Error())
		}
	})

	t.Run("auth failure suggests re-login", func(t *testing.T) {
		err := handleResolveError(&favro.AuthError{Status: 401, Message: "unauthorized"})
		if !strings.Contains(err.Error(), "auth login") {
			t.Errorf("got %q", err.Error())
		}
	})
}

func TestAmbiguousMessageOneCandidatePerLine(t *testing.T) {
	msg := ambiguousMessage(&resolver.AmbiguousError{
		Kind: resolver.KindCard,
		Raw:  "#12",
		Candidates: []resolver.Candidate{
			{ID: "cafe00000000000000000001", Name: "#12 Fix login"},
			{ID: "cafe00000000000000000003", Name: "#12 Plan roadmap"},
		},
	})
	lines := strings.Split(msg, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), msg)
	}
	if !strings.Contains(lines[1], "cafe00000000000000000001") {
		t.Errorf("line 1 = %q", lines[1])
	}
}
