// internal/export/png.go
// Package export writes static PNG renderings of a selection.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mwiater/snrplot/internal/plot"
	"github.com/mwiater/snrplot/internal/util"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a category into a file-name fragment.
func Slug(category string) string {
	s := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(category), "-"), "-")
	if s == "" {
		return "category"
	}
	return s
}

// pointStyle renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    6,
		DotColor:    col.WithAlpha(178),
	}
}

// barStyle fills the area under a bar outline at half opacity.
func barStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 1,
		StrokeColor: col,
		FillColor:   col.WithAlpha(128),
	}
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func chartTicks(ticks []plot.Tick) []chart.Tick {
	out := make([]chart.Tick, len(ticks))
	for i, t := range ticks {
		out[i] = chart.Tick{Value: t.Value, Label: t.Label}
	}
	return out
}

// placeholder keeps go-chart from rejecting a selection with no data.
func placeholder(x, y [2]float64) chart.Series {
	return chart.ContinuousSeries{
		XValues: []float64{x[0], x[1]},
		YValues: []float64{y[0], y[1]},
		Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 0},
	}
}

// ScatterChart builds the SNR vs SSIM chart on the fixed scatter scales.
func ScatterChart(r *plot.Renderer, view plot.View) chart.Chart {
	scales := r.Scales()
	byGroup := make(map[string]*chart.ContinuousSeries)
	var order []string
	for _, p := range view.Points {
		rec := r.Records()[p.ID]
		s, ok := byGroup[p.Group]
		if !ok {
			s = &chart.ContinuousSeries{Name: p.Group, Style: pointStyle(hexColor(p.Fill))}
			byGroup[p.Group] = s
			order = append(order, p.Group)
		}
		s.XValues = append(s.XValues, rec.SNR)
		s.YValues = append(s.YValues, rec.SSIM)
	}

	var series []chart.Series
	for _, g := range order {
		series = append(series, *byGroup[g])
	}
	if len(series) == 0 {
		series = append(series, placeholder(scales.ScatterX.Domain, scales.ScatterY.Domain))
	}

	layout := r.Layout()
	ch := chart.Chart{
		Title:  fmt.Sprintf("SNR vs SSIM Comparison (%s)", view.Category),
		Width:  int(layout.Width),
		Height: int(layout.Height),
		XAxis: chart.XAxis{
			Name:  "Signal to Noise Ratio (SNR)",
			Range: &chart.ContinuousRange{Min: scales.ScatterX.Domain[0], Max: scales.ScatterX.Domain[1]},
			Ticks: chartTicks(r.Axes().ScatterX),
		},
		YAxis: chart.YAxis{
			Name:  "Structural Similarity Index (SSIM)",
			Range: &chart.ContinuousRange{Min: scales.ScatterY.Domain[0], Max: scales.ScatterY.Domain[1]},
			Ticks: chartTicks(r.Axes().ScatterY),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

// HistogramChart builds one histogram pane as overlapping filled step series.
func HistogramChart(r *plot.Renderer, pane plot.Pane, x plot.Linear, xTicks []plot.Tick, title string) chart.Chart {
	var series []chart.Series
	for _, serie := range pane.Series {
		s := chart.ContinuousSeries{Name: serie.Group, Style: barStyle(hexColor(serie.Fill))}
		for _, b := range serie.Bars {
			c := float64(b.Count)
			s.XValues = append(s.XValues, b.X0, b.X0, b.X1, b.X1)
			s.YValues = append(s.YValues, 0, c, c, 0)
		}
		if len(s.XValues) > 0 {
			series = append(series, s)
		}
	}
	if len(series) == 0 {
		series = append(series, placeholder(x.Domain, pane.Y.Domain))
	}

	layout := r.Layout()
	ch := chart.Chart{
		Title:  title,
		Width:  int(layout.Width / 2),
		Height: int(layout.Height),
		XAxis: chart.XAxis{
			Name:  strings.ToUpper(pane.Metric),
			Range: &chart.ContinuousRange{Min: x.Domain[0], Max: x.Domain[1]},
			Ticks: chartTicks(xTicks),
		},
		YAxis: chart.YAxis{
			Name:  "count",
			Range: &chart.ContinuousRange{Min: pane.Y.Domain[0], Max: pane.Y.Domain[1]},
			Ticks: chartTicks(pane.YTicks),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

// FileStems maps every selector option to a distinct file-name fragment.
// Options whose slugs collide, including the "category" fallback, get their
// option position appended.
func FileStems(methods []string) map[string]string {
	seen := make(map[string]int, len(methods))
	for _, m := range methods {
		seen[Slug(m)]++
	}
	used := make(map[string]bool, len(methods))
	stems := make(map[string]string, len(methods))
	for i, m := range methods {
		stem := Slug(m)
		if seen[stem] > 1 || stem == "category" {
			stem = fmt.Sprintf("%s-%d", stem, i)
		}
		for used[stem] {
			stem = fmt.Sprintf("%s-%d", stem, i)
		}
		used[stem] = true
		stems[m] = stem
	}
	return stems
}

// WritePNGs renders the scatter and both histograms for category into dir and
// returns the written paths.
func WritePNGs(r *plot.Renderer, category, dir string) ([]string, error) {
	stem, ok := FileStems(r.Methods())[category]
	if !ok {
		stem = Slug(category)
	}
	return writePNGs(r, category, stem, dir)
}

func writePNGs(r *plot.Renderer, category, stem, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create export directory %s: %w", dir, err)
	}
	view := r.Update(category)
	scales := r.Scales()
	axes := r.Axes()

	charts := []struct {
		name  string
		chart chart.Chart
	}{
		{"scatter", ScatterChart(r, view)},
		{"snr-histogram", HistogramChart(r, view.SNR, scales.HistSNR, axes.HistSNR, "SNR Distribution")},
		{"ssim-histogram", HistogramChart(r, view.SSIM, scales.HistSSIM, axes.HistSSIM, "SSIM Distribution")},
	}

	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		var buf bytes.Buffer
		if err := c.chart.Render(chart.PNG, &buf); err != nil {
			return paths, fmt.Errorf("render %s chart for %q: %w", c.name, category, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", c.name, stem))
		if err := util.WriteFile(path, buf.Bytes()); err != nil {
			return paths, fmt.Errorf("unable to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// AllCategories exports every selector option.
func AllCategories(r *plot.Renderer, dir string) ([]string, error) {
	methods := r.Methods()
	stems := FileStems(methods)
	var paths []string
	for _, m := range methods {
		written, err := writePNGs(r, m, stems[m], dir)
		paths = append(paths, written...)
		if err != nil {
			return paths, err
		}
	}
	return paths, nil
}
