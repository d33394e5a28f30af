package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/fvr-cli/fvr/internal/ui"
)

// promptForConfirm asks a yes/no question on the terminal. In JSON mode or
// without a TTY on both ends it returns false, so destructive commands
// refuse to run non-interactively unless forced.
func promptForConfirm(message string) bool {
	if isJSONOutput() || !isatty.IsTerminal(os.Stdout.Fd()) || !isatty.IsTerminal(os.Stdin.Fd()) {
		return false
	}

	fmt.Printf("%s %s ", message, ui.Hint("[y/N]"))
	response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
