// internal/cli/export.go
package snrplot

import (
	"fmt"

	"github.com/mwiater/snrplot/internal/export"
	"github.com/mwiater/snrplot/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exportCmd groups export formats.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Group commands for exporting plots",
}

// exportPNGCmd renders the scatter and histogram charts as PNG files.
var exportPNGCmd = &cobra.Command{
	Use:   "png",
	Short: "Export the scatter plot and histograms as PNG images",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		r, err := loadRenderer(cfg)
		if err != nil {
			return err
		}

		method, _ := cmd.Flags().GetString("method")
		dir := cfg.ExportDirectory()
		var paths []string
		if method == "" {
			paths, err = export.AllCategories(r, dir)
		} else {
			paths, err = export.WritePNGs(r, method, dir)
		}
		for _, p := range paths {
			cmd.Println(p)
		}
		if err != nil {
			return fmt.Errorf("png export: %w", err)
		}
		logging.LogEvent("[EXPORT] wrote %d PNG files to %s", len(paths), dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportPNGCmd)
	exportPNGCmd.Flags().StringP("method", "m", "", "single category to export (default: every option)")
	exportPNGCmd.Flags().String("dir", "", "output directory")
	_ = viper.BindPFlag("exportDir", exportPNGCmd.Flags().Lookup("dir"))
}
