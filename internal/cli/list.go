// internal/cli/list.go
package snrplot

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// listCmd groups the listing subcommands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing methods and commands",
}

// listMethodsCmd prints the selector options: "All Methods" then each method
// in dataset order.
var listMethodsCmd = &cobra.Command{
	Use:     "methods",
	Aliases: []string{"categories"},
	Short:   "List the method filter options",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRenderer(getConfig())
		if err != nil {
			return err
		}
		for _, m := range r.Methods() {
			fmt.Fprintln(cmd.OutOrStdout(), m)
		}
		return nil
	},
}

// commandsCmd prints the command tree in two columns.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Run: func(cmd *cobra.Command, args []string) {
		runListCommands(cmd.OutOrStdout(), rootCmd)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listMethodsCmd)
	listCmd.AddCommand(commandsCmd)
}

// runListCommands prints the command tree in a two-column layout.
func runListCommands(w io.Writer, root *cobra.Command) {
	commandData := collectCommandData(root, "", "")

	maxPathLength := 0
	for _, data := range commandData {
		if len(data.path) > maxPathLength {
			maxPathLength = len(data.path)
		}
	}

	fmt.Fprintln(w, "Commands and Subcommands:")
	for _, data := range commandData {
		if strings.Contains(data.path, "completion") || strings.Contains(data.path, "help") {
			continue
		}
		fmt.Fprintf(w, "  %s%s%s\n", data.path, strings.Repeat(" ", maxPathLength-len(data.path)+2), data.description)
	}
}

type commandInfo struct {
	path        string
	description string
}

// collectCommandData walks the command tree depth first.
func collectCommandData(cmd *cobra.Command, currentPath string, indent string) []commandInfo {
	fullPath := cmd.Name()
	if currentPath != "" {
		fullPath = currentPath + " " + cmd.Name()
	}

	all := []commandInfo{{path: indent + fullPath, description: cmd.Short}}
	for _, sub := range cmd.Commands() {
		all = append(all, collectCommandData(sub, fullPath, indent+"  ")...)
	}
	return all
}
