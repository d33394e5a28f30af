package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fvr-cli/fvr/internal/config"
	"github.com/fvr-cli/fvr/internal/favro"
	"github.com/fvr-cli/fvr/internal/ui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Favro credentials",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save Favro credentials",
	Long: `Validates the email and API token against the Favro API and saves them.

The API token is created under Favro account settings. When --token is
omitted it is prompted for without echo.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		token, _ := cmd.Flags().GetString("token")

		if email == "" {
			fmt.Print("Email: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return handleError(ErrInvalidInput, err, "")
			}
			email = strings.TrimSpace(line)
		}
		if token == "" {
			fmt.Print("API token: ")
			raw, err := term.ReadPassword(os.Stdin.Fd())
			fmt.Println()
			if err != nil {
				return handleError(ErrInvalidInput, err, "Pass the token with --token when not on a terminal")
			}
			token = strings.TrimSpace(string(raw))
		}
		if email == "" || token == "" {
			return handleErrorMsg(ErrInvalidInput, "email and token are required", "")
		}

		// Validate before saving: a credentials file with a bad token only
		// causes confusing failures later.
		client := favro.NewClient(email, token, "")
		orgs, err := client.Organizations(cmd.Context())
		if err != nil {
			return handleFetchError(err)
		}

		credsPath, err := config.CredentialsPath()
		if err != nil {
			return handleError(ErrConfigError, err, "")
		}
		if err := config.SaveCredentials(credsPath, &config.Credentials{Email: email, Token: token}); err != nil {
			return handleError(ErrConfigError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"email": email, "organizations": len(orgs)}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Logged in. You have access to %d organization(s).", len(orgs)))
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove saved credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		credsPath, err := config.CredentialsPath()
		if err != nil {
			return handleError(ErrConfigError, err, "")
		}
		creds, err := config.LoadCredentials(credsPath)
		if err != nil {
			return handleError(ErrConfigError, err, "")
		}
		if creds == nil {
			return handleErrorMsg(ErrNotLoggedIn, "not logged in", "")
		}
		if err := config.ClearCredentials(credsPath); err != nil {
			return handleError(ErrConfigError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"logged_out": true}, nil)
			return nil
		}
		fmt.Println(ui.Success("Logged out"))
		return nil
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(false)
		if err != nil {
			return err
		}

		// Without a selected organization there is no user listing to match
		// against; show the account email and the accessible organizations.
		if sess.orgID == "" {
			orgs, err := sess.client.Organizations(cmd.Context())
			if err != nil {
				return handleFetchError(err)
			}

			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"email": sess.email, "organizations": orgs}, &Meta{Count: len(orgs)})
				return nil
			}
			fmt.Printf("%s %s\n", ui.Header("Email:"), sess.email)
			fmt.Printf("%s %s\n\n", ui.Header("Organization:"), ui.Hint("none selected"))
			table := ui.NewTable(2)
			table.SetHeader("ID", "Name")
			for _, org := range orgs {
				table.AddRow(org.OrganizationID, org.Name)
			}
			fmt.Print(table.String())
			return nil
		}

		users, err := sess.client.Users(cmd.Context())
		if err != nil {
			return handleFetchError(err)
		}

		var current *favro.User
		for i := range users {
			if strings.EqualFold(users[i].Email, sess.email) {
				current = &users[i]
				break
			}
		}
		if current == nil {
			return handleErrorMsg(ErrNotFound,
				fmt.Sprintf("no user with email %s in this organization", sess.email), "")
		}

		if isJSONOutput() {
			outputSuccess(current, nil)
			return nil
		}
		fmt.Printf("%s %s\n", ui.Header("User ID:"), ui.ID(current.UserID))
		fmt.Printf("%s %s\n", ui.Header("Name:"), current.Name)
		fmt.Printf("%s %s\n", ui.Header("Email:"), current.Email)
		if current.OrganizationRole != "" {
			fmt.Printf("%s %s\n", ui.Header("Role:"), current.OrganizationRole)
		}
		return nil
	},
}

func init() {
	authLoginCmd.Flags().StringP("email", "e", "", "Favro account email")
	authLoginCmd.Flags().StringP("token", "t", "", "Favro API token")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
	rootCmd.AddCommand(authCmd)
}
