package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fvr-cli/fvr/internal/favro"
	"github.com/fvr-cli/fvr/internal/resolver"
	"github.com/fvr-cli/fvr/internal/ui"
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Manage board columns",
}

var columnListCmd = &cobra.Command{
	Use:   "list",
	Short: "List columns of a board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		boardFlag, _ := cmd.Flags().GetString("board")
		ref, err := sess.requireBoardRef(boardFlag)
		if err != nil {
			return err
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
			outputSuccess(columns, &Meta{Count: len(columns)})
			return nil
		}

		table := ui.NewTable(4)
		table.SetHeader("ID", "Name", "Position", "Cards")
		for _, col := range columns {
			table.AddRow(col.ColumnID, col.Name, strconv.Itoa(col.Position), strconv.Itoa(col.CardCount))
		}
		fmt.Print(table.String())
		return nil
	},
}

var columnCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a column on a board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		boardFlag, _ := cmd.Flags().GetString("board")
		ref, err := sess.requireBoardRef(boardFlag)
		if err != nil {
			return err
		}

		board, err := sess.resolve.Boards.Resolve(cmd.Context(), ref)
		if err != nil {
			return handleResolveError(err)
		}

		req := favro.CreateColumnRequest{
			WidgetCommonID: board.WidgetCommonID,
			Name:           args[0],
		}
		if cmd.Flags().Changed("position") {
			pos, _ := cmd.Flags().GetInt("position")
			req.Position = &pos
		}

		column, err := sess.client.CreateColumn(cmd.Context(), req)
		if err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(column, nil)
			return nil
		}
		fmt.Println(ui.Successf("Created column: %s (position %d)", column.Name, column.Position))
		return nil
	},
}

var columnRenameCmd = &cobra.Command{
	Use:   "rename <column> <name>",
	Short: "Rename a column",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		column, err := resolveColumnArg(cmd, sess, args[0])
		if err != nil {
			return err
		}

		name := args[1]
		updated, err := sess.client.UpdateColumn(cmd.Context(), column.ColumnID, favro.UpdateColumnRequest{Name: &name})
		if err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(updated, nil)
			return nil
		}
		fmt.Println(ui.Successf("Renamed column to: %s", updated.Name))
		return nil
	},
}

var columnMoveCmd = &cobra.Command{
	Use:   "move <column> <position>",
	Short: "Move a column to a different position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		position, err := strconv.Atoi(args[1])
		if err != nil {
			return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("invalid position '%s'", args[1]), "")
		}

		column, err := resolveColumnArg(cmd, sess, args[0])
		if err != nil {
			return err
		}

		updated, err := sess.client.UpdateColumn(cmd.Context(), column.ColumnID, favro.UpdateColumnRequest{Position: &position})
		if err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(updated, nil)
			return nil
		}
		fmt.Println(ui.Successf("Moved column '%s' to position %d", updated.Name, updated.Position))
		return nil
	},
}

var columnDeleteCmd = &cobra.Command{
	Use:   "delete <column>",
	Short: "Delete a column and all its cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		column, err := resolveColumnArg(cmd, sess, args[0])
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			name := column.Name
			if name == "" {
				name = column.ColumnID
			}
			if !promptForConfirm(fmt.Sprintf("Delete column '%s' and all its cards?", name)) {
				return handleErrorMsg(ErrAborted, "aborted", "Pass --force to skip confirmation")
			}
		}

		if err := sess.client.DeleteColumn(cmd.Context(), column.ColumnID); err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"deleted": column.ColumnID}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Deleted column '%s'", column.Name))
		return nil
	},
}

// resolveColumnArg resolves a column reference using the --board flag or the
// selected default board as scope. Resolution failures are already mapped to
// CLI errors.
func resolveColumnArg(cmd *cobra.Command, sess *session, raw string) (*favro.Column, error) {
	boardFlag, _ := cmd.Flags().GetString("board")
	scope := resolver.Scope{Board: sess.boardScope(boardFlag)}

	column, err := sess.resolve.Columns.Resolve(cmd.Context(), raw, scope)
	if err != nil {
		return nil, handleResolveError(err)
	}
	return column, nil
}

func init() {
	for _, cmd := range []*cobra.Command{columnListCmd, columnCreateCmd, columnRenameCmd, columnMoveCmd, columnDeleteCmd} {
		cmd.Flags().StringP("board", "b", "", "Board ID or name")
	}
	columnCreateCmd.Flags().IntP("position", "p", 0, "Column position (0-indexed)")
	columnDeleteCmd.Flags().BoolP("force", "f", false, "Skip confirmation")

	columnCmd.AddCommand(columnListCmd)
	columnCmd.AddCommand(columnCreateCmd)
	columnCmd.AddCommand(columnRenameCmd)
	columnCmd.AddCommand(columnMoveCmd)
	columnCmd.AddCommand(columnDeleteCmd)
	rootCmd.AddCommand(columnCmd)
}
