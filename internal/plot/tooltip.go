// internal/plot/tooltip.go
package plot

import (
	"fmt"
	"strconv"

	"github.com/mwiater/snrplot/internal/dataset"
)

// Tooltip is the hover text for one scatter point.
type Tooltip struct {
	Method     string `json:"method"`
	ImageIndex string `json:"image_index"`
	SNR        string `json:"snr"`
	SSIM       string `json:"ssim"`
}

// Pointer offsets place the tooltip just right of and above the cursor.
const (
	TooltipOffsetX = 10
	TooltipOffsetY = -28
)

// FormatSNR renders an SNR value with three decimals.
func FormatSNR(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }

// FormatSSIM renders an SSIM value with four decimals.
func FormatSSIM(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

// FormatImageIndex prints the index as its shortest decimal form, so 3.0 and
// 1e2 read as "3" and "100".
func FormatImageIndex(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// NewTooltip builds the hover text for r.
func NewTooltip(r dataset.Record) Tooltip {
	return Tooltip{
		Method:     r.Method,
		ImageIndex: FormatImageIndex(r.ImageIndex),
		SNR:        FormatSNR(r.SNR),
		SSIM:       FormatSSIM(r.SSIM),
	}
}

// Lines returns the tooltip rows in display order.
func (t Tooltip) Lines() []string {
	return []string{
		"Method: " + t.Method,
		"Image: " + t.ImageIndex,
		"SNR: " + t.SNR,
		"SSIM: " + t.SSIM,
	}
}

// String joins the rows on one line.
func (t Tooltip) String() string {
	return fmt.Sprintf("Method: %s | Image: %s | SNR: %s | SSIM: %s", t.Method, t.ImageIndex, t.SNR, t.SSIM)
}
