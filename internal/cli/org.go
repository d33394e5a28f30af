package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fvr-cli/fvr/internal/ui"
)

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Manage organizations",
}

var orgListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accessible organizations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(false)
		if err != nil {
			return err
		}

		orgs, err := sess.client.Organizations(cmd.Context())
		if err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(orgs, &Meta{Count: len(orgs)})
			return nil
		}

		table := ui.NewTable(3)
		table.SetHeader("", "ID", "Name")
		for _, org := range orgs {
			marker := ""
			if org.OrganizationID == sess.orgID {
				marker = "*"
			}
			table.AddRow(marker, org.OrganizationID, org.Name)
		}
		fmt.Print(table.String())
		if sess.orgID != "" {
			fmt.Println(ui.Hint("* = selected"))
		}
		return nil
	},
}

var orgSelectCmd = &cobra.Command{
	Use:   "select <org>",
	Short: "Select the organization commands operate on",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(false)
		if err != nil {
			return err
		}

		org, err := sess.resolve.Organizations.Resolve(cmd.Context(), args[0])
		if err != nil {
			return handleResolveError(err)
		}

		getState().OrganizationID = org.OrganizationID
		// A board selection belongs to one organization; switching orgs
		// invalidates it.
		getState().BoardID = ""
		if err := saveState(); err != nil {
			return handleError(ErrConfigError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(org, nil)
			return nil
		}
		fmt.Println(ui.Successf("Selected organization: %s", org.Name))
		return nil
	},
}

var orgCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the selected organization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(true)
		if err != nil {
			return err
		}

		org, err := sess.client.Organization(cmd.Context(), sess.orgID)
		if err != nil {
			return handleFetchError(err)
		}

		if isJSONOutput() {
			outputSuccess(org, nil)
			return nil
		}
		fmt.Printf("Current organization: %s (%s)\n", org.Name, ui.ID(org.OrganizationID))
		return nil
	},
}

func init() {
	orgCmd.AddCommand(orgListCmd)
	orgCmd.AddCommand(orgSelectCmd)
	orgCmd.AddCommand(orgCurrentCmd)
	rootCmd.AddCommand(orgCmd)
}
