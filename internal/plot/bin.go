// internal/plot/bin.go
package plot

import (
	"math"
	"sort"

	"github.com/mwiater/snrplot/internal/dataset"
)

// Bin is a contiguous value range and the records that fall inside it.
type Bin struct {
	X0      float64          `json:"x0"`
	X1      float64          `json:"x1"`
	Members []dataset.Record `json:"-"`
}

// Len is the number of records in the bin.
func (b Bin) Len() int { return len(b.Members) }

// Histogram assigns records to bins delimited by fixed thresholds inside a
// fixed domain.
type Histogram struct {
	value      func(dataset.Record) float64
	x0, x1     float64
	thresholds []float64
}

// NewHistogram keeps only thresholds strictly inside (x0, x1]; the first bin
// starts at x0 and the last ends at x1.
func NewHistogram(value func(dataset.Record) float64, domain [2]float64, thresholds []float64) Histogram {
	x0, x1 := domain[0], domain[1]
	tz := append([]float64(nil), thresholds...)
	sort.Float64s(tz)
	a, b := 0, len(tz)
	for a < b && tz[a] <= x0 {
		a++
	}
	for b > a && tz[b-1] > x1 {
		b--
	}
	return Histogram{value: value, x0: x0, x1: x1, thresholds: tz[a:b]}
}

// Thresholds returns the interior bin edges.
func (h Histogram) Thresholds() []float64 {
	return append([]float64(nil), h.thresholds...)
}

// Domain returns the histogram's value range.
func (h Histogram) Domain() [2]float64 { return [2]float64{h.x0, h.x1} }

// Bin partitions records into len(thresholds)+1 bins. Values outside the
// domain or NaN are skipped.
func (h Histogram) Bin(records []dataset.Record) []Bin {
	m := len(h.thresholds)
	bins := make([]Bin, m+1)
	for i := range bins {
		bins[i].X0 = h.x0
		if i > 0 {
			bins[i].X0 = h.thresholds[i-1]
		}
		bins[i].X1 = h.x1
		if i < m {
			bins[i].X1 = h.thresholds[i]
		}
	}
	for _, r := range records {
		x := h.value(r)
		if math.IsNaN(x) || x < h.x0 || x > h.x1 {
			continue
		}
		idx := sort.Search(m, func(i int) bool { return h.thresholds[i] > x })
		bins[idx].Members = append(bins[idx].Members, r)
	}
	return bins
}

// PeakLen is the largest bin size, or 0 for no bins.
func PeakLen(bins []Bin) int {
	peak := 0
	for _, b := range bins {
		if b.Len() > peak {
			peak = b.Len()
		}
	}
	return peak
}
