// internal/plot/layout.go
package plot

// Margin is the space reserved around a drawing surface.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Layout sizes both drawing surfaces. The scatter and histogram surfaces share
// the same dimensions.
type Layout struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// DefaultLayout is an 800x400 surface with room on the right for the legend.
func DefaultLayout() Layout {
	return Layout{
		Width:  800,
		Height: 400,
		Margin: Margin{Top: 40, Right: 150, Bottom: 60, Left: 60},
	}
}

// Baseline is the y pixel of the x axes.
func (l Layout) Baseline() float64 { return l.Height - l.Margin.Bottom }

func (l Layout) scatterXRange() (float64, float64) {
	return l.Margin.Left, l.Width - l.Margin.Right
}

func (l Layout) scatterYRange() (float64, float64) {
	return l.Height - l.Margin.Bottom, l.Margin.Top
}

func (l Layout) snrPaneRange() (float64, float64) {
	return l.Margin.Left, l.Width/2 - l.Margin.Right/2
}

func (l Layout) ssimPaneRange() (float64, float64) {
	return l.Width/2 + l.Margin.Left/2, l.Width - l.Margin.Right
}

// Padding is a multiplicative margin applied to a data extent.
type Padding struct {
	Lower float64 `json:"lower" mapstructure:"lower"`
	Upper float64 `json:"upper" mapstructure:"upper"`
}

// Options tunes scale padding and binning.
type Options struct {
	SNRPadding  Padding
	SSIMPadding Padding
	// BinTicks is the tick count used to derive histogram thresholds.
	BinTicks int
	// AxisTicks is the tick count used for drawn axes.
	AxisTicks int
}

// DefaultOptions pads SNR by 5% and SSIM by 0.01%, and bins on 15 ticks.
func DefaultOptions() Options {
	return Options{
		SNRPadding:  Padding{Lower: 0.95, Upper: 1.05},
		SSIMPadding: Padding{Lower: 0.9999, Upper: 1.0001},
		BinTicks:    15,
		AxisTicks:   10,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.SNRPadding.Lower <= 0 || o.SNRPadding.Upper <= 0 {
		o.SNRPadding = def.SNRPadding
	}
	if o.SSIMPadding.Lower <= 0 || o.SSIMPadding.Upper <= 0 {
		o.SSIMPadding = def.SSIMPadding
	}
	if o.BinTicks <= 0 {
		o.BinTicks = def.BinTicks
	}
	if o.AxisTicks <= 0 {
		o.AxisTicks = def.AxisTicks
	}
	return o
}
