// internal/cli/show_config.go
package snrplot

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp"
	"github.com/mwiater/snrplot/internal/appconfig"
	"github.com/spf13/cobra"
)

// showConfigCmd prints the merged configuration so flag, environment and
// file overrides can be checked.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show the configuration after the config file, SNRPLOT_* environment variables and flags are merged.`,
	Run: func(cmd *cobra.Command, args []string) {
		runShowConfig(cmd.OutOrStdout(), getConfig(), DebugEnabled())
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}

func runShowConfig(w io.Writer, cfg *appconfig.Config, debug bool) {
	if cfg.ConfigPath == "" {
		fmt.Fprintln(w, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(w, "Config file: %s\n\n", cfg.ConfigPath)
	}

	layout := cfg.Layout()
	opts := cfg.PlotOptions()
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintf(w, "  Debug:            %v\n", cfg.Debug)
	fmt.Fprintf(w, "  Dataset:          %s\n", cfg.DataFilePath())
	fmt.Fprintf(w, "  Log File:         %s\n", cfg.LogFilePath())
	fmt.Fprintf(w, "  Surface:          %gx%g\n", layout.Width, layout.Height)
	fmt.Fprintf(w, "  Margin:           top=%g right=%g bottom=%g left=%g\n",
		layout.Margin.Top, layout.Margin.Right, layout.Margin.Bottom, layout.Margin.Left)
	fmt.Fprintf(w, "  Bin Ticks:        %d\n", opts.BinTicks)
	fmt.Fprintf(w, "  SNR Padding:      x%g / x%g\n", opts.SNRPadding.Lower, opts.SNRPadding.Upper)
	fmt.Fprintf(w, "  SSIM Padding:     x%g / x%g\n", opts.SSIMPadding.Lower, opts.SSIMPadding.Upper)
	fmt.Fprintf(w, "  Report:           %s\n", cfg.ReportFilePath())
	fmt.Fprintf(w, "  Export Dir:       %s\n", cfg.ExportDirectory())
	fmt.Fprintf(w, "  Listen Addr:      %s\n", cfg.ListenAddr())
	fmt.Fprintf(w, "  Sync Selections:  %v\n", cfg.Sync)
	fmt.Fprintf(w, "  Shutdown Timeout: %s\n", cfg.ShutdownTimeoutDuration())

	if debug {
		fmt.Fprintln(w)
		pp.Fprintln(w, cfg)
	}
}
