package plot

import (
	"testing"

	"github.com/mwiater/snrplot/internal/dataset"
)

func snrRecords(values ...float64) []dataset.Record {
	out := make([]dataset.Record, len(values))
	for i, v := range values {
		out[i] = dataset.Record{SNR: v}
	}
	return out
}

func TestNewHistogramTrimsThresholds(t *testing.T) {
	h := NewHistogram(dataset.SNROf, [2]float64{0, 10}, []float64{0, 2, 4, 10, 12})
	if got := h.Thresholds(); !floatsEqual(got, []float64{2, 4, 10}) {
		t.Fatalf("unexpected thresholds: %v", got)
	}
}

func TestHistogramBinEdgesAndMembership(t *testing.T) {
	h := NewHistogram(dataset.SNROf, [2]float64{0, 10}, []float64{2, 4, 10})
	bins := h.Bin(snrRecords(0, 1.9, 2, 3, 9.99, 10, -1, 11))
	if len(bins) != 4 {
		t.Fatalf("expected 4 bins, got %d", len(bins))
	}
	wantCounts := []int{2, 2, 1, 1}
	for i, b := range bins {
		if b.Len() != wantCounts[i] {
			t.Fatalf("bin %d [%v,%v): expected %d, got %d", i, b.X0, b.X1, wantCounts[i], b.Len())
		}
	}
	if bins[0].X0 != 0 || bins[3].X0 != 10 || bins[3].X1 != 10 {
		t.Fatalf("unexpected edges: %+v", bins)
	}
	if PeakLen(bins) != 2 {
		t.Fatalf("expected peak 2, got %d", PeakLen(bins))
	}
}

func TestHistogramNoThresholds(t *testing.T) {
	h := NewHistogram(dataset.SNROf, [2]float64{0, 0}, []float64{0})
	bins := h.Bin(snrRecords(0, 0))
	if len(bins) != 1 || bins[0].Len() != 2 {
		t.Fatalf("expected single bin with both records, got %+v", bins)
	}
}

func TestPeakLenEmpty(t *testing.T) {
	if PeakLen(nil) != 0 {
		t.Fatalf("expected 0 peak for no bins")
	}
}
