package plot

import (
	"math"
	"testing"
)

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-12 {
			return false
		}
	}
	return true
}

func TestTicksUnitInterval(t *testing.T) {
	got := Ticks(0, 1, 10)
	want := []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}
	if !floatsEqual(got, want) {
		t.Fatalf("unexpected ticks: %v", got)
	}
}

func TestTicksPaddedSNRDomain(t *testing.T) {
	got := Ticks(9.5, 21, 15)
	if len(got) != 12 || got[0] != 10 || got[len(got)-1] != 21 {
		t.Fatalf("unexpected ticks: %v", got)
	}
}

func TestTicksReverseAndDegenerate(t *testing.T) {
	if got := Ticks(1, 0, 5); !floatsEqual(got, []float64{1, 0.8, 0.6, 0.4, 0.2, 0}) {
		t.Fatalf("unexpected reverse ticks: %v", got)
	}
	if got := Ticks(3, 3, 10); !floatsEqual(got, []float64{3}) {
		t.Fatalf("unexpected degenerate ticks: %v", got)
	}
	if got := Ticks(0, 1, 0); got != nil {
		t.Fatalf("expected no ticks for zero count, got %v", got)
	}
}

func TestTickStepAndDecimals(t *testing.T) {
	if step := TickStep(0, 1, 10); math.Abs(step-0.1) > 1e-12 {
		t.Fatalf("expected 0.1 step, got %v", step)
	}
	if d := stepDecimals(0.1); d != 1 {
		t.Fatalf("expected 1 decimal, got %d", d)
	}
	if d := stepDecimals(0.0005); d != 4 {
		t.Fatalf("expected 4 decimals, got %d", d)
	}
	if d := stepDecimals(5); d != 0 {
		t.Fatalf("expected 0 decimals, got %d", d)
	}
}

func TestLinearApply(t *testing.T) {
	s := NewLinear(0, 10, 60, 650)
	if got := s.Apply(5); got != 355 {
		t.Fatalf("expected 355, got %v", got)
	}
	inverted := NewLinear(0, 4, 340, 40)
	if got := inverted.Apply(4); got != 40 {
		t.Fatalf("expected 40, got %v", got)
	}
	flat := NewLinear(2, 2, 0, 100)
	if got := flat.Apply(2); got != 50 {
		t.Fatalf("expected midpoint for degenerate domain, got %v", got)
	}
}

func TestTickLabelsPrecision(t *testing.T) {
	ticks := NewLinear(0, 1, 0, 100).TickLabels(5)
	if len(ticks) < 2 || ticks[1].Label != "0.2" || math.Abs(ticks[1].Pos-20) > 1e-9 {
		t.Fatalf("unexpected tick labels: %+v", ticks)
	}
}

func TestPadDomainWidensAwayFromData(t *testing.T) {
	pad := Padding{Lower: 0.95, Upper: 1.05}
	lo, hi := padDomain(10, 20, pad)
	if lo != 9.5 || hi != 21 {
		t.Fatalf("unexpected positive padding: %v %v", lo, hi)
	}
	lo, hi = padDomain(-10, -2, pad)
	if !(lo < -10 && hi > -2) {
		t.Fatalf("expected negative extent to widen, got %v %v", lo, hi)
	}
}
