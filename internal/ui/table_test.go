package ui

import (
	"strings"
	"testing"
)

func TestTableAlignment(t *testing.T) {
	table := NewTable(3)
	table.AddRow("a", "bb", "c")
	table.AddRow("longer", "b", "ccc")

	got := table.String()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "a       bb  c" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "longer  b   ccc" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestTableEmpty(t *testing.T) {
	if got := NewTable(2).String(); got != "" {
		t.Errorf("empty table rendered %q", got)
	}
}

func TestTableShortRow(t *testing.T) {
	table := NewTable(3)
	table.AddRow("only")
	got := table.String()
	if !strings.HasPrefix(got, "only") {
		t.Errorf("got %q", got)
	}
}

func TestTableHeader(t *testing.T) {
	table := NewTable(2)
	table.SetHeader("ID", "Name")
	table.AddRow("1", "x")
	got := table.String()
	if !strings.Contains(got, "ID") || !strings.Contains(got, "Name") {
		t.Errorf("header missing from %q", got)
	}
	if lines := strings.Count(got, "\n"); lines != 2 {
		t.Errorf("expected 2 lines, got %d", lines)
	}
}
