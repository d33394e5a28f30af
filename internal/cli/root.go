// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fvr-cli/fvr/internal/config"
	"github.com/fvr-cli/fvr/internal/ui"
)

var (
	// Global flags
	configPathFlag string
	statePathFlag  string

	// Resolved values
	resolvedStatePath string
	cfg               *config.Config
	sessionState      *config.State
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fvr",
	Short: "fvr - Favro from the command line",
	Long: `fvr manages Favro boards, columns, cards, tags, and users from the
command line.

Most commands accept an entity reference wherever an ID is expected: a
canonical ID, a display name, a card number like '#123', or an email for
users. Ambiguous names are reported with every match so you can retry with
an exact ID.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		configPath := configPathFlag
		if configPath == "" {
			if configPath, err = config.DefaultPath(); err != nil {
				return fmt.Errorf("failed to locate config: %w", err)
			}
		}
		if cfg, err = config.Load(configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		if cfg.Output == "json" && !cmd.Flags().Changed("json") {
			jsonOutput = true
		}

		resolvedStatePath = statePathFlag
		if resolvedStatePath == "" {
			if resolvedStatePath, err = config.DefaultStatePath(); err != nil {
				return fmt.Errorf("failed to locate state: %w", err)
			}
		}
		if sessionState, err = config.LoadState(resolvedStatePath); err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		return nil
	},
}

// Execute runs the CLI. Failures already reported in JSON mode are not
// printed again; everything else goes to stderr. The caller maps any error
// to a non-zero exit.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errSilent) {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&statePathFlag, "state", "", "Path to state file")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format (for agent/script use)")
}

// getState returns the loaded session state.
func getState() *config.State {
	return sessionState
}

// saveState persists the session state.
func saveState() error {
	return config.SaveState(resolvedStatePath, sessionState)
}
