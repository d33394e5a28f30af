package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fvr-cli/fvr/internal/favro"
	"github.com/fvr-cli/fvr/internal/ui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Manage boards",
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards in the organization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		collectionID, _ := cmd.Flags().GetString("collection")
		archived, _ := cmd.Flags().GetBool("archived")

		widgets, err := sess.client.Widgets(cmd.Context(), favro.WidgetFilter{
			CollectionID: collectionID,
			Archived:     archived,
		})
		if err != nil {
			return handleFetchError(err)
		}

		// Backlogs are widgets too; this command is about boards.
		boards := widgets[:0:0]
		for _, w := range widgets {
			if w.Type == favro.WidgetTypeBoard {
				boards = append(boards, w)
			}
		}

		if isJSONOutput() {
			outputSuccess(boards, &Meta{Count: len(boards)})
			return nil
		}

		table := ui.NewTable(4)
		table.SetHeader("", "ID", "Name", "Color")
		for _, b := range boards {
			marker := ""
			if b.WidgetCommonID == sess.boardID {
				marker = "*"
			}
			table.AddRow(marker, b.WidgetCommonID, b.Name, b.Color)
		}
		fmt.Print(table.String())
		if sess.boardID != "" {
			fmt.Println(ui.Hint("* = selected"))
		}
		return nil
	},
}

var boardShowCmd = &cobra.Command{
	Use:   "show [<board>]",
	Short: "Show board details with columns and card counts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		ref := sess.boardScope(argOrEmpty(args))
		if ref == "" {
			return handleErrorMsg(ErrInvalidInput, "no board specified and no default set",
				"Pass a board or run 'fvr board select <id>' first")
		}

		board, err := sess.resolve.Boards.Resolve(cmd.Context(), ref)
		if err != nil {
			return handleResolveError(err)
		}
		columns, err := sess.client.Columns(cmd.Context(), board.WidgetCommonID)
		if err != nil {
			return handleFetchError(err)
		}
		sort.Slice(columns, func(i, j int) bool { return columns[i].Position < columns[j].Position })

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"board": board, "columns": columns}, nil)
			return nil
		}

		fmt.Printf("%s %s\n", ui.Header("Board:"), board.Name)
		fmt.Printf("%s %s\n", ui.Header("ID:"), ui.ID(board.WidgetCommonID))
		fmt.Printf("%s %s\n", ui.Header("Type:"), board.Type)
		if board.Color != "" {
			fmt.Printf("%s %s\n", ui.Header("Color:"), board.Color)
		}
		fmt.Println()

		table := ui.NewTable(4)
		table.SetHeader("Column ID", "Name", "Position", "Cards")
		for _, col := range columns {
			table.AddRow(col.ColumnID, col.Name, fmt.Sprintf("%d", col.Position), fmt.Sprintf("%d", col.CardCount))
		}
		fmt.Print(table.String())
		return nil
	},
}

var boardViewCmd = &cobra.Command{
	Use:   "view [<board>]",
	Short: "View a board in a kanban-style layout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		ref := sess.boardScope(argOrEmpty(args))
		if ref == "" {
			return handleErrorMsg(ErrInvalidInput, "no board specified and no default set",
				"Pass a board or run 'fvr board select <id>' first")
		}

		maxCards, _ := cmd.Flags().GetInt("max-cards")
		if all, _ := cmd.Flags().GetBool("all"); all {
			maxCards = 0
		}

		board, err := sess.resolve.Boards.Resolve(cmd.Context(), ref)
		if err != nil {
			return handleResolveError(err)
		}
		columns, err := sess.client.Columns(cmd.Context(), board.WidgetCommonID)
		if err != nil {
			return handleFetchError(err)
		}
		cards, err := sess.client.Cards(cmd.Context(), favro.CardFilter{WidgetCommonID: board.WidgetCommonID})
		if err != nil {
			return handleFetchError(err)
		}
		tags, err := sess.client.Tags(cmd.Context())
		if err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"board": board, "columns": columns, "cards": cards}, nil)
			return nil
		}

		fmt.Print(renderBoardView(board, columns, cards, tags, maxCards))
		return nil
	},
}

var boardSelectCmd = &cobra.Command{
	Use:   "select <board>",
	Short: "Select the board commands operate on by default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		board, err := sess.resolve.Boards.Resolve(cmd.Context(), args[0])
		if err != nil {
			return handleResolveError(err)
		}

		getState().BoardID = board.WidgetCommonID
		if err := saveState(); err != nil {
			return handleError(ErrConfigError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(board, nil)
			return nil
		}
		fmt.Println(ui.Successf("Selected board: %s", board.Name))
		return nil
	},
}

var boardCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the selected board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}
		if sess.boardID == "" {
			return handleErrorMsg(ErrInvalidInput, "no board selected", "Run 'fvr board select <id>' first")
		}

		board, err := sess.resolve.Boards.Resolve(cmd.Context(), sess.boardID)
		if err != nil {
			return handleResolveError(err)
		}

		if isJSONOutput() {
			outputSuccess(board, nil)
			return nil
		}
		fmt.Printf("Current board: %s (%s)\n", board.Name, ui.ID(board.WidgetCommonID))
		return nil
	},
}

// renderBoardView arranges cards under their columns for ui.RenderBoard.
func renderBoardView(board *favro.Widget, columns []favro.Column, cards []favro.Card, tags []favro.Tag, maxCards int) string {
	sort.Slice(columns, func(i, j int) bool { return columns[i].Position < columns[j].Position })

	tagNames := make(map[string]string, len(tags))
	for _, t := range tags {
		tagNames[t.TagID] = t.Name
	}

	byColumn := make(map[string][]favro.Card)
	for _, card := range cards {
		if card.ColumnID != "" {
			byColumn[card.ColumnID] = append(byColumn[card.ColumnID], card)
		}
	}
	for _, colCards := range byColumn {
		sort.Slice(colCards, func(i, j int) bool { return colCards[i].ListPosition < colCards[j].ListPosition })
	}

	viewColumns := make([]ui.BoardColumn, len(columns))
	for i, col := range columns {
		viewCol := ui.BoardColumn{Title: col.Name}
		for _, card := range byColumn[col.ColumnID] {
			viewCol.Cards = append(viewCol.Cards, boardCardCell(card, tagNames))
		}
		viewColumns[i] = viewCol
	}

	return ui.RenderBoard("Board: "+board.Name, viewColumns, maxCards, ui.TermWidth())
}

func boardCardCell(card favro.Card, tagNames map[string]string) ui.BoardCard {
	cell := ui.BoardCard{Title: fmt.Sprintf("[#%d] %s", card.SequentialID, card.Name)}

	if card.DueDate != nil {
		cell.Notes = append(cell.Notes, "due "+card.DueDate.Format("2006-01-02"))
	}
	if n := len(card.Assignments); n > 0 {
		cell.Notes = append(cell.Notes, fmt.Sprintf("%d assigned", n))
	}
	if card.TasksTotal > 0 {
		cell.Notes = append(cell.Notes, fmt.Sprintf("tasks %d/%d", card.TasksDone, card.TasksTotal))
	}
	if len(card.Tags) > 0 {
		names := make([]string, 0, len(card.Tags))
		for _, id := range card.Tags {
			if name, ok := tagNames[id]; ok {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			cell.Notes = append(cell.Notes, strings.Join(names, ", "))
		}
	}
	return cell
}

func argOrEmpty(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func init() {
	boardListCmd.Flags().StringP("collection", "c", "", "Filter by collection ID")
	boardListCmd.Flags().BoolP("archived", "a", false, "Include archived boards")
	boardViewCmd.Flags().IntP("max-cards", "m", 7, "Max cards to show per column")
	boardViewCmd.Flags().BoolP("all", "a", false, "Show all cards (no limit)")

	boardCmd.AddCommand(boardListCmd)
	boardCmd.AddCommand(boardShowCmd)
	boardCmd.AddCommand(boardViewCmd)
	boardCmd.AddCommand(boardSelectCmd)
	boardCmd.AddCommand(boardCurrentCmd)
	rootCmd.AddCommand(boardCmd)
}
