// internal/plot/svg.go
package plot

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/mwiater/snrplot/internal/dataset"
)

const (
	scatterTitle   = "SNR vs SSIM Comparison"
	scatterXLabel  = "Signal to Noise Ratio (SNR)"
	scatterYLabel  = "Structural Similarity Index (SSIM)"
	histSNRLabel   = "SNR Distribution"
	histSSIMLabel  = "SSIM Distribution"
	histYAxisClass = "-y-axis"
)

// svgWriter accumulates the first write error so drawing code stays linear.
type svgWriter struct {
	w   io.Writer
	err error
}

func (s *svgWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func attr(v string) string {
	return html.EscapeString(v)
}

// WriteScatterSVG draws the scatter surface for view.
func (r *Renderer) WriteScatterSVG(w io.Writer, view View) error {
	l := r.layout
	s := &svgWriter{w: w}
	s.printf(`<svg xmlns="http://www.w3.org/2000/svg" class="scatter" width="%s" height="%s">`+"\n", num(l.Width), num(l.Height))

	x0, x1 := l.scatterXRange()
	s.bottomAxis("x-axis", r.axes.ScatterX, x0, x1, 0, l.Baseline())
	s.printf(`<text class="axis-label" x="%s" y="%s" fill="black" text-anchor="middle">%s</text>`+"\n",
		num(l.Width/2), num(l.Baseline()+40), attr(scatterXLabel))

	y0, y1 := l.scatterYRange()
	s.leftAxis("y-axis", r.axes.ScatterY, y0, y1, l.Margin.Left)
	s.printf(`<text class="axis-label" transform="rotate(-90)" x="%s" y="%s" fill="black" text-anchor="middle">%s</text>`+"\n",
		num(-l.Height/2), num(l.Margin.Left-40), attr(scatterYLabel))

	s.printf(`<text class="title" x="%s" y="%s" text-anchor="middle" style="font-size: 16px">%s</text>`+"\n",
		num(l.Width/2), num(l.Margin.Top/2), attr(scatterTitle))

	s.printf(`<g class="legend" transform="translate(%s,%s)">`+"\n", num(l.Width-l.Margin.Right+20), num(l.Margin.Top))
	for i, g := range dataset.Groups {
		s.printf(`<circle cx="0" cy="%d" r="6" fill="%s"></circle>`+"\n", i*25, r.Color(g))
		s.printf(`<text x="15" y="%d">%s</text>`+"\n", i*25+5, attr(g))
	}
	s.printf("</g>\n")

	s.printf(`<g class="points">` + "\n")
	for _, p := range view.Points {
		s.printf(`<circle class="point" data-id="%d" cx="%s" cy="%s" r="%s" fill="%s" opacity="%s" data-tooltip="%s"></circle>`+"\n",
			p.ID, num(p.CX), num(p.CY), num(p.R), p.Fill, num(p.Opacity), attr(strings.Join(p.Tooltip.Lines(), "\n")))
	}
	s.printf("</g>\n</svg>\n")
	return s.err
}

// WriteHistogramSVG draws both histogram panes for view.
func (r *Renderer) WriteHistogramSVG(w io.Writer, view View) error {
	l := r.layout
	s := &svgWriter{w: w}
	s.printf(`<svg xmlns="http://www.w3.org/2000/svg" class="histogram" width="%s" height="%s" style="margin-top: 40px">`+"\n", num(l.Width), num(l.Height))

	labelX := l.Margin.Left + l.Width/4
	snr0, snr1 := l.snrPaneRange()
	s.bottomAxis("snr-x-axis", r.axes.HistSNR, snr0, snr1, 0, l.Baseline())
	s.printf(`<text class="axis-label" x="%s" y="%s" fill="black" text-anchor="middle">%s</text>`+"\n",
		num(labelX), num(l.Baseline()+40), attr(histSNRLabel))

	ssim0, ssim1 := l.ssimPaneRange()
	s.bottomAxis("ssim-x-axis", r.axes.HistSSIM, ssim0, ssim1, 0, l.Baseline())
	s.printf(`<text class="axis-label" x="%s" y="%s" fill="black" text-anchor="middle">%s</text>`+"\n",
		num(ssim0+l.Width/4), num(l.Baseline()+40), attr(histSSIMLabel))

	y0, y1 := l.Baseline(), l.Margin.Top
	s.leftAxis(view.SNR.Metric+histYAxisClass, view.SNR.YTicks, y0, y1, snr0)
	s.leftAxis(view.SSIM.Metric+histYAxisClass, view.SSIM.YTicks, y0, y1, ssim0)

	for _, pane := range []Pane{view.SNR, view.SSIM} {
		for _, serie := range pane.Series {
			for _, b := range serie.Bars {
				s.printf(`<rect class="%s" x="%s" y="%s" width="%s" height="%s" fill="%s" opacity="%s" data-count="%d"></rect>`+"\n",
					serie.Class, num(b.X), num(b.Y), num(b.Width), num(b.Height), serie.Fill, num(serie.Opacity), b.Count)
			}
		}
	}
	s.printf("</svg>\n")
	return s.err
}

// bottomAxis draws a horizontal axis with ticks below the domain line.
func (s *svgWriter) bottomAxis(class string, ticks []Tick, lo, hi, tx, ty float64) {
	s.printf(`<g class="axis %s" transform="translate(%s,%s)" fill="none" font-size="10" font-family="sans-serif" text-anchor="middle">`+"\n", class, num(tx), num(ty))
	s.printf(`<path class="domain" stroke="currentColor" d="M%s,6V0H%sV6"></path>`+"\n", num(lo), num(hi))
	for _, t := range ticks {
		s.printf(`<g class="tick" transform="translate(%s,0)"><line stroke="currentColor" y2="6"></line><text fill="currentColor" y="9" dy="0.71em">%s</text></g>`+"\n",
			num(t.Pos), attr(t.Label))
	}
	s.printf("</g>\n")
}

// leftAxis draws a vertical axis at x with ticks to the left.
func (s *svgWriter) leftAxis(class string, ticks []Tick, lo, hi, x float64) {
	s.printf(`<g class="axis %s" transform="translate(%s,0)" fill="none" font-size="10" font-family="sans-serif" text-anchor="end">`+"\n", class, num(x))
	s.printf(`<path class="domain" stroke="currentColor" d="M-6,%sH0V%sH-6"></path>`+"\n", num(lo), num(hi))
	for _, t := range ticks {
		s.printf(`<g class="tick" transform="translate(0,%s)"><line stroke="currentColor" x2="-6"></line><text fill="currentColor" x="-9" dy="0.32em">%s</text></g>`+"\n",
			num(t.Pos), attr(t.Label))
	}
	s.printf("</g>\n")
}
