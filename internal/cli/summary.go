// internal/cli/summary.go
package snrplot

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mwiater/snrplot/internal/dataset"
	"github.com/mwiater/snrplot/internal/plot"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

// BinCount is one histogram bin with both groups' counts.
type BinCount struct {
	X0       float64 `json:"x0" yaml:"x0"`
	X1       float64 `json:"x1" yaml:"x1"`
	NoSignal int     `json:"no_signal" yaml:"no_signal"`
	Signal   int     `json:"signal" yaml:"signal"`
}

// CategorySummary is the histogram state of one selection.
type CategorySummary struct {
	Category string     `json:"category" yaml:"category"`
	Count    int        `json:"count" yaml:"count"`
	NoSignal int        `json:"no_signal" yaml:"no_signal"`
	Signal   int        `json:"signal" yaml:"signal"`
	SNR      []BinCount `json:"snr" yaml:"snr"`
	SSIM     []BinCount `json:"ssim" yaml:"ssim"`
}

// summaryCmd prints per-category bin counts.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print histogram bin counts per method",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRenderer(getConfig())
		if err != nil {
			return err
		}
		method, _ := cmd.Flags().GetString("method")
		format, _ := cmd.Flags().GetString("format")

		categories := r.Methods()
		if method != "" {
			categories = []string{method}
		}
		return writeSummary(cmd.OutOrStdout(), summarize(r, categories), format)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringP("method", "m", "", "single category to summarize (default: every option)")
	summaryCmd.Flags().StringP("format", "f", "text", "output format: text, json or yaml")
}

// summarize computes the bin counts of each category.
func summarize(r *plot.Renderer, categories []string) []CategorySummary {
	out := make([]CategorySummary, 0, len(categories))
	for _, c := range categories {
		view := r.Update(c)
		s := CategorySummary{
			Category: c,
			Count:    view.Count,
			SNR:      paneCounts(view.SNR),
			SSIM:     paneCounts(view.SSIM),
		}
		for _, serie := range view.SNR.Series {
			switch serie.Group {
			case dataset.NoSignal:
				s.NoSignal = serie.Total()
			case dataset.Signal:
				s.Signal = serie.Total()
			}
		}
		out = append(out, s)
	}
	return out
}

func paneCounts(pane plot.Pane) []BinCount {
	var counts []BinCount
	for _, serie := range pane.Series {
		if counts == nil {
			counts = make([]BinCount, len(serie.Bars))
		}
		for i, bar := range serie.Bars {
			counts[i].X0, counts[i].X1 = bar.X0, bar.X1
			switch serie.Group {
			case dataset.NoSignal:
				counts[i].NoSignal = bar.Count
			case dataset.Signal:
				counts[i].Signal = bar.Count
			}
		}
	}
	return counts
}

func writeSummary(w io.Writer, summaries []CategorySummary, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(summaries); err != nil {
			return fmt.Errorf("encode yaml summary: %w", err)
		}
		return enc.Close()
	case "", "text":
		writeSummaryText(w, summaries)
		return nil
	default:
		return fmt.Errorf("unknown summary format %q (want text, json or yaml)", format)
	}
}

func writeSummaryText(w io.Writer, summaries []CategorySummary) {
	header := color.New(color.FgCyan, color.Bold)
	noSignal := color.New(color.FgBlue)
	signal := color.New(color.FgRed)

	for i, s := range summaries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  %d records (%s / %s)\n",
			header.Sprint(s.Category), s.Count,
			noSignal.Sprintf("%s %d", dataset.NoSignal, s.NoSignal),
			signal.Sprintf("%s %d", dataset.Signal, s.Signal))
		writeBinTable(w, "SNR", s.SNR, noSignal, signal)
		writeBinTable(w, "SSIM", s.SSIM, noSignal, signal)
	}
}

func writeBinTable(w io.Writer, metric string, bins []BinCount, noSignal, signal *color.Color) {
	fmt.Fprintf(w, "  %s\n", metric)
	for _, b := range bins {
		if b.NoSignal == 0 && b.Signal == 0 {
			continue
		}
		fmt.Fprintf(w, "    [%-10g, %-10g)  %s  %s\n", b.X0, b.X1,
			noSignal.Sprintf("%4d", b.NoSignal), signal.Sprintf("%4d", b.Signal))
	}
}
