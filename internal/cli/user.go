package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fvr-cli/fvr/internal/ui"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage organization members",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List members of the organization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		users, err := sess.client.Users(cmd.Context())
		if err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(users, &Meta{Count: len(users)})
			return nil
		}

		table := ui.NewTable(4)
		table.SetHeader("ID", "Name", "Email", "Role")
		for _, u := range users {
			table.AddRow(u.UserID, u.Name, u.Email, u.OrganizationRole)
		}
		fmt.Print(table.String())
		return nil
	},
}

func init() {
	userCmd.AddCommand(userListCmd)
	rootCmd.AddCommand(userCmd)
}
