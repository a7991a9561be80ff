// internal/cli/report.go
package snrplot

import (
	"github.com/mwiater/snrplot/internal/logging"
	"github.com/mwiater/snrplot/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// reportCmd writes the standalone HTML page with every selection embedded.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the interactive plot as a standalone HTML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		r, err := loadRenderer(cfg)
		if err != nil {
			return err
		}
		html, err := report.Generate(r)
		if err != nil {
			return err
		}
		path := cfg.ReportFilePath()
		if err := report.WriteFile(path, html); err != nil {
			return err
		}
		logging.LogEvent("[REPORT] wrote %s (%d selections)", path, len(r.Methods()))
		cmd.Printf("Report written to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("output", "o", "", "HTML output path")
	_ = viper.BindPFlag("report", reportCmd.Flags().Lookup("output"))
}
