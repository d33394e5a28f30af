package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fvr-cli/fvr/internal/ui"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage organization tags",
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags in the organization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		tags, err := sess.client.Tags(cmd.Context())
		if err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(tags, &Meta{Count: len(tags)})
			return nil
		}

		table := ui.NewTable(3)
		table.SetHeader("ID", "Name", "Color")
		for _, t := range tags {
			table.AddRow(t.TagID, t.Name, t.Color)
		}
		fmt.Print(table.String())
		return nil
	},
}

func init() {
	tagCmd.AddCommand(tagListCmd)
	rootCmd.AddCommand(tagCmd)
}
