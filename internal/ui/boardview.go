package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Kanban-style board rendering: columns side by side, each a bordered box
// listing its cards top to bottom.

const (
	minColumnWidth = 22
	maxColumnWidth = 44
)

// BoardCard is one card cell in a board view.
type BoardCard struct {
	Title string   // first line, rendered bold
	Notes []string // muted annotation lines (due date, assignees, tasks)
}

// BoardColumn is one column in a board view.
type BoardColumn struct {
	Title string
	Cards []BoardCard
}

// RenderBoard renders a board as side-by-side columns. Each column shows at
// most maxCards cards followed by a muted "+N more" line when truncated.
func RenderBoard(title string, columns []BoardColumn, maxCards, termWidth int) string {
	if len(columns) == 0 {
		return Header(title) + "\n" + Hint("no columns") + "\n"
	}
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}

	colWidth := termWidth/len(columns) - 2
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}
	if colWidth > maxColumnWidth {
		colWidth = maxColumnWidth
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#6C7086")).
		Padding(0, 1).
		Width(colWidth)

	rendered := make([]string, len(columns))
	for i, col := range columns {
		rendered[i] = boxStyle.Render(renderColumn(col, maxCards, colWidth-2))
	}

	var sb strings.Builder
	sb.WriteString(Header(title))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	sb.WriteString("\n")
	return sb.String()
}

func renderColumn(col BoardColumn, maxCards, width int) string {
	var lines []string
	lines = append(lines, Bold.Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Cards))))

	shown := col.Cards
	if maxCards > 0 && len(shown) > maxCards {
		shown = shown[:maxCards]
	}

	for _, card := range shown {
		lines = append(lines, "")
		lines = append(lines, truncate(card.Title, width))
		for _, note := range card.Notes {
			lines = append(lines, Hint(truncate(note, width)))
		}
	}

	if remaining := len(col.Cards) - len(shown); remaining > 0 {
		lines = append(lines, "", Hint(fmt.Sprintf("… +%d more", remaining)))
	}

	return strings.Join(lines, "\n")
}

// truncate shortens s to at most width runes, ending in an ellipsis. Cutting
// on rune boundaries keeps multibyte titles valid.
func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
