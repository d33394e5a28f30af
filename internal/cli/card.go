package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fvr-cli/fvr/internal/favro"
	"github.com/fvr-cli/fvr/internal/resolver"
	"github.com/fvr-cli/fvr/internal/ui"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage cards",
}

var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards matching a filter",
	Long: `Lists cards filtered by board, column, or collection. At least one
filter is required; the API refuses unfiltered card listings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		boardFlag, _ := cmd.Flags().GetString("board")
		columnFlag, _ := cmd.Flags().GetString("column")
		collectionID, _ := cmd.Flags().GetString("collection")

		boardRef := sess.boardScope(boardFlag)
		if boardRef == "" && columnFlag == "" && collectionID == "" {
			return handleErrorMsg(ErrInvalidInput,
				"at least one filter is required: --board, --column, or --collection", "")
		}

		filter := favro.CardFilter{CollectionID: collectionID}
		if boardRef != "" {
			board, err := sess.resolve.Boards.Resolve(cmd.Context(), boardRef)
			if err != nil {
				return handleResolveError(err)
			}
			filter.WidgetCommonID = board.WidgetCommonID
		}
		if columnFlag != "" {
			column, err := sess.resolve.Columns.Resolve(cmd.Context(), columnFlag, resolver.Scope{Board: boardRef})
			if err != nil {
				return handleResolveError(err)
			}
			filter.ColumnID = column.ColumnID
		}

		cards, err := sess.client.Cards(cmd.Context(), filter)
		if err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(cards, &Meta{Count: len(cards)})
			return nil
		}

		table := ui.NewTable(4)
		table.SetHeader("#", "Name", "Tasks", "Card ID")
		for _, card := range cards {
			tasks := ""
			if card.TasksTotal > 0 {
				tasks = fmt.Sprintf("%d/%d", card.TasksDone, card.TasksTotal)
			}
			table.AddRow("#"+strconv.Itoa(card.SequentialID), card.Name, tasks, card.CardID)
		}
		fmt.Print(table.String())
		return nil
	},
}

var cardShowCmd = &cobra.Command{
	Use:   "show <card>",
	Short: "Show detailed card information",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		card, err := resolveCardArg(cmd, sess, args[0])
		if err != nil {
			return err
		}

		if isJSONOutput() {
			outputSuccess(card, nil)
			return nil
		}
		printCardDetail(card)
		return nil
	},
}

var cardCreateCmd = &cobra.Command{
	Use:   "create [<name>]",
	Short: "Create a card",
	Long: `Creates a card, either from a name plus flags or from a YAML file:

  name: Fix the flaky deploy
  description: |
    Steps to reproduce ...
  board: Sprint
  column: Doing
  tags: [bug, infra]
  assign: [a@example.com]

Board, column, tag, and user values in the file are resolved like any
command-line reference.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		fromFile, _ := cmd.Flags().GetString("from-file")
		if fromFile != "" {
			if len(args) > 0 {
				return handleErrorMsg(ErrInvalidInput, "pass either a name or --from-file, not both", "")
			}
			return createCardFromFile(cmd, sess, fromFile)
		}
		if len(args) == 0 {
			return handleErrorMsg(ErrInvalidInput, "card name is required", "Pass a name or use --from-file")
		}

		boardFlag, _ := cmd.Flags().GetString("board")
		columnFlag, _ := cmd.Flags().GetString("column")
		description, _ := cmd.Flags().GetString("description")

		card, err := createCard(cmd, sess, args[0], description, sess.boardScope(boardFlag), columnFlag)
		if err != nil {
			return err
		}

		if isJSONOutput() {
			outputSuccess(card, nil)
			return nil
		}
		fmt.Println(ui.Successf("Created card #%d: %s", card.SequentialID, card.Name))
		return nil
	},
}

var cardUpdateCmd = &cobra.Command{
	Use:   "update <card>",
	Short: "Update a card's name or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("description") {
			return handleErrorMsg(ErrInvalidInput, "at least one of --name or --description must be provided", "")
		}

		card, err := resolveCardArg(cmd, sess, args[0])
		if err != nil {
			return err
		}

		var req favro.UpdateCardRequest
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			req.Name = &name
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			req.DetailedDescription = &description
		}

		updated, err := sess.client.UpdateCard(cmd.Context(), card.CardID, req)
		if err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(updated, nil)
			return nil
		}
		fmt.Println(ui.Successf("Updated card #%d: %s", updated.SequentialID, updated.Name))
		return nil
	},
}

var cardMoveCmd = &cobra.Command{
	Use:   "move <card>",
	Short: "Move a card to a different column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		boardFlag, _ := cmd.Flags().GetString("board")
		columnFlag, _ := cmd.Flags().GetString("column")
		if columnFlag == "" {
			return handleErrorMsg(ErrInvalidInput, "--column is required", "")
		}

		boardRef, err := sess.requireBoardRef(boardFlag)
		if err != nil {
			return err
		}
		board, err := sess.resolve.Boards.Resolve(cmd.Context(), boardRef)
		if err != nil {
			return handleResolveError(err)
		}

		card, err := sess.resolve.Cards.Resolve(cmd.Context(), args[0], resolver.Scope{Board: board.WidgetCommonID})
		if err != nil {
			return handleResolveError(err)
		}
		column, err := sess.resolve.Columns.Resolve(cmd.Context(), columnFlag, resolver.Scope{Board: board.WidgetCommonID})
		if err != nil {
			return handleResolveError(err)
		}

		updated, err := sess.client.UpdateCard(cmd.Context(), card.CardID, favro.UpdateCardRequest{
			WidgetCommonID: board.WidgetCommonID,
			ColumnID:       column.ColumnID,
		})
		if err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(updated, nil)
			return nil
		}
		fmt.Println(ui.Successf("Moved card #%d to column '%s'", updated.SequentialID, column.Name))
		return nil
	},
}

var cardAssignCmd = &cobra.Command{
	Use:   "assign <card>",
	Short: "Assign or unassign users on a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		addRef, _ := cmd.Flags().GetString("add")
		removeRef, _ := cmd.Flags().GetString("remove")
		if addRef == "" && removeRef == "" {
			return handleErrorMsg(ErrInvalidInput, "either --add or --remove must be provided", "")
		}

		card, err := resolveCardArg(cmd, sess, args[0])
		if err != nil {
			return err
		}

		var req favro.UpdateCardRequest
		var addName, removeName string
		if addRef != "" {
			user, err := sess.resolve.Users.Resolve(cmd.Context(), addRef)
			if err != nil {
				return handleResolveError(err)
			}
			req.AddAssignmentIDs = []string{user.UserID}
			addName = user.Name
		}
		if removeRef != "" {
			user, err := sess.resolve.Users.Resolve(cmd.Context(), removeRef)
			if err != nil {
				return handleResolveError(err)
			}
			req.RemoveAssignmentIDs = []string{user.UserID}
			removeName = user.Name
		}

		updated, err := sess.client.UpdateCard(cmd.Context(), card.CardID, req)
		if err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(updated, nil)
			return nil
		}
		if addName != "" {
			fmt.Println(ui.Successf("Assigned '%s' to card #%d", addName, updated.SequentialID))
		}
		if removeName != "" {
			fmt.Println(ui.Successf("Unassigned '%s' from card #%d", removeName, updated.SequentialID))
		}
		return nil
	},
}

var cardTagCmd = &cobra.Command{
	Use:   "tag <card>",
	Short: "Add or remove tags on a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		addRef, _ := cmd.Flags().GetString("add")
		removeRef, _ := cmd.Flags().GetString("remove")
		if addRef == "" && removeRef == "" {
			return handleErrorMsg(ErrInvalidInput, "either --add or --remove must be provided", "")
		}

		card, err := resolveCardArg(cmd, sess, args[0])
		if err != nil {
			return err
		}

		var req favro.UpdateCardRequest
		var addName, removeName string
		if addRef != "" {
			tag, err := sess.resolve.Tags.Resolve(cmd.Context(), addRef)
			if err != nil {
				return handleResolveError(err)
			}
			req.AddTagIDs = []string{tag.TagID}
			addName = tag.Name
		}
		if removeRef != "" {
			tag, err := sess.resolve.Tags.Resolve(cmd.Context(), removeRef)
			if err != nil {
				return handleResolveError(err)
			}
			req.RemoveTagIDs = []string{tag.TagID}
			removeName = tag.Name
		}

		updated, err := sess.client.UpdateCard(cmd.Context(), card.CardID, req)
		if err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(updated, nil)
			return nil
		}
		if addName != "" {
			fmt.Println(ui.Successf("Added tag '%s' to card #%d", addName, updated.SequentialID))
		}
		if removeName != "" {
			fmt.Println(ui.Successf("Removed tag '%s' from card #%d", removeName, updated.SequentialID))
		}
		return nil
	},
}

var cardDeleteCmd = &cobra.Command{
	Use:   "delete <card>",
	Short: "Delete a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		card, err := resolveCardArg(cmd, sess, args[0])
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			if !promptForConfirm(fmt.Sprintf("Delete card #%d: %s?", card.SequentialID, card.Name)) {
				return handleErrorMsg(ErrAborted, "aborted", "Pass --force to skip confirmation")
			}
		}

		everywhere, _ := cmd.Flags().GetBool("everywhere")
		if err := sess.client.DeleteCard(cmd.Context(), card.CardID, everywhere); err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"deleted": card.CardID}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Deleted card #%d: %s", card.SequentialID, card.Name))
		return nil
	},
}

// resolveCardArg resolves a card reference using the --board flag as an
// optional scope. Unlike columns, the default board is not applied: an
// unscoped card reference deliberately searches every board.
func resolveCardArg(cmd *cobra.Command, sess *session, raw string) (*favro.Card, error) {
	boardFlag, _ := cmd.Flags().GetString("board")

	card, err := sess.resolve.Cards.Resolve(cmd.Context(), raw, resolver.Scope{Board: boardFlag})
	if err != nil {
		return nil, handleResolveError(err)
	}
	return card, nil
}

func createCard(cmd *cobra.Command, sess *session, name, description, boardRef, columnRef string) (*favro.Card, error) {
	req := favro.CreateCardRequest{Name: name, DetailedDescription: description}

	if boardRef != "" {
		board, err := sess.resolve.Boards.Resolve(cmd.Context(), boardRef)
		if err != nil {
			return nil, handleResolveError(err)
		}
		req.WidgetCommonID = board.WidgetCommonID
	}
	if columnRef != "" {
		column, err := sess.resolve.Columns.Resolve(cmd.Context(), columnRef, resolver.Scope{Board: boardRef})
		if err != nil {
			return nil, handleResolveError(err)
		}
		req.ColumnID = column.ColumnID
	}

	card, err := sess.client.CreateCard(cmd.Context(), req)
	if err != nil {
		return nil, handleFetchError(err)
	}
	return card, nil
}

// cardFile is the YAML shape accepted by 'card create --from-file'.
type cardFile struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Board       string   `yaml:"board"`
	Column      string   `yaml:"column"`
	Tags        []string `yaml:"tags"`
	Assign      []string `yaml:"assign"`
}

func createCardFromFile(cmd *cobra.Command, sess *session, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return handleError(ErrInvalidInput, err, "")
	}
	var def cardFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return handleError(ErrInvalidInput, fmt.Errorf("failed to parse %s: %w", path, err), "")
	}
	if strings.TrimSpace(def.Name) == "" {
		return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("%s: 'name' is required", path), "")
	}

	card, err := createCard(cmd, sess, def.Name, def.Description, sess.boardScope(def.Board), def.Column)
	if err != nil {
		return err
	}

	// Tags and assignments go through a follow-up update; the create
	// endpoint doesn't take them.
	var req favro.UpdateCardRequest
	for _, ref := range def.Tags {
		tag, err := sess.resolve.Tags.Resolve(cmd.Context(), ref)
		if err != nil {
			return handleResolveError(err)
		}
		req.AddTagIDs = append(req.AddTagIDs, tag.TagID)
	}
	for _, ref := range def.Assign {
		user, err := sess.resolve.Users.Resolve(cmd.Context(), ref)
		if err != nil {
			return handleResolveError(err)
		}
		req.AddAssignmentIDs = append(req.AddAssignmentIDs, user.UserID)
	}
	if len(req.AddTagIDs) > 0 || len(req.AddAssignmentIDs) > 0 {
		if card, err = sess.client.UpdateCard(cmd.Context(), card.CardID, req); err != nil {
			return handleFetchError(err)
		}
	}

	if isJSONOutput() {
		outputSuccess(card, nil)
		return nil
	}
	fmt.Println(ui.Successf("Created card #%d: %s", card.SequentialID, card.Name))
	return nil
}

func printCardDetail(card *favro.Card) {
	fmt.Printf("%s %s\n\n", ui.Header(fmt.Sprintf("#%d", card.SequentialID)), card.Name)
	fmt.Printf("%s %s\n", ui.Hint("Card ID:"), card.CardID)
	fmt.Printf("%s %s\n", ui.Hint("Common ID:"), card.CardCommonID)
	if card.WidgetCommonID != "" {
		fmt.Printf("%s %s\n", ui.Hint("Board:"), card.WidgetCommonID)
	}
	if card.ColumnID != "" {
		fmt.Printf("%s %s\n", ui.Hint("Column:"), card.ColumnID)
	}
	if card.StartDate != nil {
		fmt.Printf("%s %s\n", ui.Hint("Start:"), card.StartDate.Format("2006-01-02"))
	}
	if card.DueDate != nil {
		fmt.Printf("%s %s\n", ui.Hint("Due:"), card.DueDate.Format("2006-01-02"))
	}
	if len(card.Assignments) > 0 {
		ids := make([]string, len(card.Assignments))
		for i, a := range card.Assignments {
			ids[i] = a.UserID
		}
		fmt.Printf("%s %s\n", ui.Hint("Assigned:"), strings.Join(ids, ", "))
	}
	if len(card.Tags) > 0 {
		fmt.Printf("%s %s\n", ui.Hint("Tags:"), strings.Join(card.Tags, ", "))
	}
	if card.TasksTotal > 0 {
		fmt.Printf("%s %d/%d\n", ui.Hint("Tasks:"), card.TasksDone, card.TasksTotal)
	}
	if card.NumComments > 0 {
		fmt.Printf("%s %d\n", ui.Hint("Comments:"), card.NumComments)
	}

	if card.DetailedDescription != "" {
		fmt.Println()
		fmt.Println(ui.Header("Description:"))
		if isatty.IsTerminal(os.Stdout.Fd()) {
			if rendered, err := ui.RenderMarkdown(card.DetailedDescription, ui.TermWidth()); err == nil {
				fmt.Print(rendered)
				return
			}
		}
		fmt.Println(card.DetailedDescription)
	}
}

func init() {
	cardListCmd.Flags().StringP("board", "b", "", "Filter by board ID or name")
	cardListCmd.Flags().StringP("column", "c", "", "Filter by column ID or name (requires --board for name)")
	cardListCmd.Flags().String("collection", "", "Filter by collection ID")

	cardShowCmd.Flags().StringP("board", "b", "", "Board ID or name (narrows search scope)")

	cardCreateCmd.Flags().StringP("board", "b", "", "Board ID or name")
	cardCreateCmd.Flags().StringP("column", "c", "", "Column ID or name (requires --board for name)")
	cardCreateCmd.Flags().StringP("description", "d", "", "Card description")
	cardCreateCmd.Flags().String("from-file", "", "Create from a YAML card definition")

	cardUpdateCmd.Flags().StringP("board", "b", "", "Board ID or name (narrows search scope)")
	cardUpdateCmd.Flags().StringP("name", "n", "", "New card name")
	cardUpdateCmd.Flags().StringP("description", "d", "", "New description")

	cardMoveCmd.Flags().StringP("board", "b", "", "Board ID or name")
	cardMoveCmd.Flags().StringP("column", "c", "", "Target column ID or name")

	cardAssignCmd.Flags().StringP("board", "b", "", "Board ID or name (narrows search scope)")
	cardAssignCmd.Flags().StringP("add", "a", "", "User ID, email, or name to assign")
	cardAssignCmd.Flags().StringP("remove", "r", "", "User ID, email, or name to unassign")

	cardTagCmd.Flags().StringP("board", "b", "", "Board ID or name (narrows search scope)")
	cardTagCmd.Flags().StringP("add", "a", "", "Tag ID or name to add")
	cardTagCmd.Flags().StringP("remove", "r", "", "Tag ID or name to remove")

	cardDeleteCmd.Flags().StringP("board", "b", "", "Board ID or name (narrows search scope)")
	cardDeleteCmd.Flags().BoolP("everywhere", "e", false, "Delete from all boards")
	cardDeleteCmd.Flags().BoolP("force", "f", false, "Skip confirmation")

	cardCmd.AddCommand(cardListCmd)
	cardCmd.AddCommand(cardShowCmd)
	cardCmd.AddCommand(cardCreateCmd)
	cardCmd.AddCommand(cardUpdateCmd)
	cardCmd.AddCommand(cardMoveCmd)
	cardCmd.AddCommand(cardAssignCmd)
	cardCmd.AddCommand(cardTagCmd)
	cardCmd.AddCommand(cardDeleteCmd)
	rootCmd.AddCommand(cardCmd)
}
