// internal/cli/show.go
package snrplot

import (
	"github.com/spf13/cobra"
)

// showCmd groups commands that display snrplot's own state.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for displaying settings",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
