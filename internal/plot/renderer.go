// internal/plot/renderer.go
// Package plot turns the metrics dataset into the scatter and histogram views
// for a selected method. Scales and bin edges are fixed when the Renderer is
// built; only membership and histogram heights change per selection.
package plot

import (
	"math"

	"github.com/mwiater/snrplot/internal/dataset"
)

// Series classes, one per histogram bar series.
const (
	ClassSNRNoSignal  = "snr-bar-no-signal"
	ClassSNRSignal    = "snr-bar-signal"
	ClassSSIMNoSignal = "ssim-bar-no-signal"
	ClassSSIMSignal   = "ssim-bar-signal"
)

const (
	pointRadius  = 6
	pointOpacity = 0.7
	barOpacity   = 0.5
)

// groupPalette is the color range; the first two entries belong to
// "No Signal" and "Signal".
var groupPalette = []string{"#87CEEB", "#FA8072"}

// Scales holds the four fixed x/y scales.
type Scales struct {
	ScatterX Linear `json:"scatter_x"`
	ScatterY Linear `json:"scatter_y"`
	HistSNR  Linear `json:"hist_snr"`
	HistSSIM Linear `json:"hist_ssim"`
}

// Axes holds the tick marks of the fixed axes.
type Axes struct {
	ScatterX []Tick `json:"scatter_x"`
	ScatterY []Tick `json:"scatter_y"`
	HistSNR  []Tick `json:"hist_snr"`
	HistSSIM []Tick `json:"hist_ssim"`
}

// Renderer computes views of one immutable dataset. It is safe for concurrent
// use.
type Renderer struct {
	records  []dataset.Record
	methods  []string
	layout   Layout
	opts     Options
	scales   Scales
	axes     Axes
	snrHist  Histogram
	ssimHist Histogram
	colors   map[string]string
}

// NewRenderer derives the fixed scales, thresholds and colors from the full
// dataset.
func NewRenderer(records []dataset.Record, layout Layout, opts Options) *Renderer {
	opts = opts.withDefaults()
	if layout.Width <= 0 || layout.Height <= 0 {
		layout = DefaultLayout()
	}

	snrLo, snrHi := paddedExtent(records, dataset.SNROf, opts.SNRPadding)
	ssimLo, ssimHi := paddedExtent(records, dataset.SSIMOf, opts.SSIMPadding)

	sxr0, sxr1 := layout.scatterXRange()
	syr0, syr1 := layout.scatterYRange()
	hsr0, hsr1 := layout.snrPaneRange()
	hmr0, hmr1 := layout.ssimPaneRange()

	scales := Scales{
		ScatterX: NewLinear(snrLo, snrHi, sxr0, sxr1),
		ScatterY: NewLinear(ssimLo, ssimHi, syr0, syr1),
		HistSNR:  NewLinear(snrLo, snrHi, hsr0, hsr1),
		HistSSIM: NewLinear(ssimLo, ssimHi, hmr0, hmr1),
	}

	r := &Renderer{
		records: records,
		methods: dataset.Methods(records),
		layout:  layout,
		opts:    opts,
		scales:  scales,
		axes: Axes{
			ScatterX: scales.ScatterX.TickLabels(opts.AxisTicks),
			ScatterY: scales.ScatterY.TickLabels(opts.AxisTicks),
			HistSNR:  scales.HistSNR.TickLabels(opts.AxisTicks),
			HistSSIM: scales.HistSSIM.TickLabels(opts.AxisTicks),
		},
		snrHist:  NewHistogram(dataset.SNROf, scales.HistSNR.Domain, scales.HistSNR.Ticks(opts.BinTicks)),
		ssimHist: NewHistogram(dataset.SSIMOf, scales.HistSSIM.Domain, scales.HistSSIM.Ticks(opts.BinTicks)),
		colors:   assignColors(records),
	}
	return r
}

func paddedExtent(records []dataset.Record, value func(dataset.Record) float64, pad Padding) (float64, float64) {
	lo, hi, ok := dataset.Extent(records, value)
	if !ok {
		return 0, 1
	}
	return padDomain(lo, hi, pad)
}

// assignColors gives the two known groups their fixed colors and cycles the
// palette for any other label in first-seen order.
func assignColors(records []dataset.Record) map[string]string {
	colors := make(map[string]string, len(dataset.Groups))
	for i, g := range dataset.Groups {
		colors[g] = groupPalette[i%len(groupPalette)]
	}
	next := len(dataset.Groups)
	for _, r := range records {
		if _, ok := colors[r.Group]; ok {
			continue
		}
		colors[r.Group] = groupPalette[next%len(groupPalette)]
		next++
	}
	return colors
}

// Methods returns the selector options.
func (r *Renderer) Methods() []string { return append([]string(nil), r.methods...) }

// Layout returns the surface dimensions.
func (r *Renderer) Layout() Layout { return r.layout }

// Scales returns the fixed scales.
func (r *Renderer) Scales() Scales { return r.scales }

// Axes returns the fixed axis ticks.
func (r *Renderer) Axes() Axes { return r.axes }

// Records returns the full dataset.
func (r *Renderer) Records() []dataset.Record { return r.records }

// Color returns the fill for a group.
func (r *Renderer) Color(group string) string {
	if c, ok := r.colors[group]; ok {
		return c
	}
	return groupPalette[0]
}

// SNRHistogram and SSIMHistogram expose the fixed binning.
func (r *Renderer) SNRHistogram() Histogram  { return r.snrHist }
func (r *Renderer) SSIMHistogram() Histogram { return r.ssimHist }

// View is everything drawn for one selection.
type View struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Points   []Point `json:"points"`
	SNR      Pane    `json:"snr"`
	SSIM     Pane    `json:"ssim"`
}

// Point is one scatter mark, keyed by the record's dataset index.
type Point struct {
	ID      int     `json:"id"`
	CX      float64 `json:"cx"`
	CY      float64 `json:"cy"`
	R       float64 `json:"r"`
	Fill    string  `json:"fill"`
	Opacity float64 `json:"opacity"`
	Group   string  `json:"group"`
	Tooltip Tooltip `json:"tooltip"`
}

// Pane is one histogram: a y scale and two overlapping bar series.
type Pane struct {
	Metric string  `json:"metric"`
	Y      Linear  `json:"y"`
	YTicks []Tick  `json:"y_ticks"`
	Series []Serie `json:"series"`
}

// Serie is one group's bars within a pane.
type Serie struct {
	Class   string  `json:"class"`
	Group   string  `json:"group"`
	Fill    string  `json:"fill"`
	Opacity float64 `json:"opacity"`
	Bins    []Bin   `json:"-"`
	Bars    []Bar   `json:"bars"`
}

// Total is the number of records across the serie's bins.
func (s Serie) Total() int {
	n := 0
	for _, b := range s.Bins {
		n += b.Len()
	}
	return n
}

// Bar is the drawn rectangle for one bin.
type Bar struct {
	X0     float64 `json:"x0"`
	X1     float64 `json:"x1"`
	Count  int     `json:"count"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Update computes the view for category. Unknown categories yield an empty
// view.
func (r *Renderer) Update(category string) View {
	filtered := dataset.FilterIndexed(r.records, category)

	points := make([]Point, 0, len(filtered))
	subset := make([]dataset.Record, 0, len(filtered))
	for _, rec := range filtered {
		subset = append(subset, rec.Record)
		points = append(points, Point{
			ID:      rec.Index,
			CX:      r.scales.ScatterX.Apply(rec.SNR),
			CY:      r.scales.ScatterY.Apply(rec.SSIM),
			R:       pointRadius,
			Fill:    r.Color(rec.Group),
			Opacity: pointOpacity,
			Group:   rec.Group,
			Tooltip: NewTooltip(rec.Record),
		})
	}

	parts := dataset.Partition(subset)
	return View{
		Category: category,
		Count:    len(filtered),
		Points:   points,
		SNR: r.pane("snr", r.snrHist, r.scales.HistSNR, parts,
			ClassSNRNoSignal, ClassSNRSignal),
		SSIM: r.pane("ssim", r.ssimHist, r.scales.HistSSIM, parts,
			ClassSSIMNoSignal, ClassSSIMSignal),
	}
}

func (r *Renderer) pane(metric string, h Histogram, x Linear, parts map[string][]dataset.Record, noSignalClass, signalClass string) Pane {
	noSignal := h.Bin(parts[dataset.NoSignal])
	signal := h.Bin(parts[dataset.Signal])

	peak := max(PeakLen(noSignal), PeakLen(signal))
	top := float64(peak)
	if peak == 0 {
		top = 1
	}
	y := NewLinear(0, top, r.layout.Baseline(), r.layout.Margin.Top)

	return Pane{
		Metric: metric,
		Y:      y,
		YTicks: y.TickLabels(r.opts.AxisTicks),
		Series: []Serie{
			r.serie(noSignalClass, dataset.NoSignal, noSignal, x, y),
			r.serie(signalClass, dataset.Signal, signal, x, y),
		},
	}
}

func (r *Renderer) serie(class, group string, bins []Bin, x, y Linear) Serie {
	bars := make([]Bar, len(bins))
	for i, b := range bins {
		top := y.Apply(float64(b.Len()))
		bars[i] = Bar{
			X0:     b.X0,
			X1:     b.X1,
			Count:  b.Len(),
			X:      x.Apply(b.X0),
			Y:      top,
			Width:  math.Max(0, x.Apply(b.X1)-x.Apply(b.X0)-1),
			Height: r.layout.Baseline() - top,
		}
	}
	return Serie{
		Class:   class,
		Group:   group,
		Fill:    r.Color(group),
		Opacity: barOpacity,
		Bins:    bins,
		Bars:    bars,
	}
}

// Views computes the view for every selector option, in option order.
func (r *Renderer) Views() []View {
	views := make([]View, 0, len(r.methods))
	for _, m := range r.methods {
		views = append(views, r.Update(m))
	}
	return views
}
