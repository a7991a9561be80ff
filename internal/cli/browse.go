// internal/cli/browse.go
package snrplot

import (
	"github.com/mwiater/snrplot/internal/tui"
	"github.com/spf13/cobra"
)

// browseCmd starts the terminal browser.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse methods, histograms and points in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRenderer(getConfig())
		if err != nil {
			return err
		}
		return tui.Run(r)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
