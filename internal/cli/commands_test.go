package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestCommandTree(t *testing.T) {
	wantPaths := []string{
		"auth login", "auth logout", "auth whoami",
		"org list", "org select", "org current",
		"board list", "board show", "board view", "board select", "board current",
		"column list", "column create", "column rename", "column move", "column delete",
		"card list", "card show", "card create", "card update", "card move",
		"card assign", "card tag", "card delete",
		"tag list",
		"user list",
		"version",
	}
	for _, path := range wantPaths {
		if _, ok := findCommandByPath(rootCmd, path); !ok {
			t.Errorf("command %q missing from CLI tree", path)
		}
	}
}

func TestBoardScopedCommandsTakeBoardFlag(t *testing.T) {
	// Every command that resolves a column or card accepts --board so the
	// scope can be given without selecting a default first.
	paths := []string{
		"column list", "column create", "column rename", "column move", "column delete",
		"card list", "card show", "card create", "card update", "card move",
		"card assign", "card tag", "card delete",
	}
	for _, path := range paths {
		cmd, ok := findCommandByPath(rootCmd, path)
		if !ok {
			t.Errorf("command %q missing from CLI tree", path)
			continue
		}
		if cmd.Flags().Lookup("board") == nil {
			t.Errorf("command %q has no --board flag", path)
		}
	}
}

func TestDestructiveCommandsTakeForceFlag(t *testing.T) {
	for _, path := range []string{"column delete", "card delete"} {
		cmd, ok := findCommandByPath(rootCmd, path)
		if !ok {
			t.Fatalf("command %q missing from CLI tree", path)
		}
		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Errorf("command %q has no --force flag", path)
			continue
		}
		if flag.Value.Type() != "bool" {
			t.Errorf("%q --force is %s, want bool", path, flag.Value.Type())
		}
	}
}

func TestFlagsHaveUsageText(t *testing.T) {
	for _, path := range commandPaths(rootCmd) {
		cmd, ok := findCommandByPath(rootCmd, path)
		if !ok || !cmd.Runnable() {
			continue
		}
		cmd.LocalFlags().VisitAll(func(flag *pflag.Flag) {
			if flag.Name == "help" {
				return
			}
			if flag.Usage == "" {
				t.Errorf("flag --%s on %q has no usage text", flag.Name, path)
			}
		})
	}
}

func commandPaths(root *cobra.Command) []string {
	var out []string
	var walk func(cmd *cobra.Command, prefix string)

	walk = func(cmd *cobra.Command, prefix string) {
		for _, child := range cmd.Commands() {
			path := child.Name()
			if prefix != "" {
				path = strings.TrimSpace(prefix + " " + child.Name())
			}
			out = append(out, path)
			walk(child, path)
		}
	}

	walk(root, "")
	return out
}

func findCommandByPath(root *cobra.Command, path string) (*cobra.Command, bool) {
	parts := strings.Fields(path)
	cur := root
	for _, part := range parts {
		var next *cobra.Command
		for _, child := range cur.Commands() {
			if child.Name() == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
