// internal/plot/scale.go
package plot

import (
	"math"
	"strconv"
)

// Linear maps a numeric domain interval onto a pixel range.
type Linear struct {
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
}

// NewLinear builds a linear scale from [d0,d1] to [r0,r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Apply maps v into the range. A degenerate domain maps everything to the
// middle of the range.
func (s Linear) Apply(v float64) float64 {
	span := s.Domain[1] - s.Domain[0]
	t := 0.5
	if span != 0 {
		t = (v - s.Domain[0]) / span
	}
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// Ticks returns roughly count human-friendly values spanning the domain.
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.Domain[0], s.Domain[1], count)
}

// TickLabels formats the values produced by Ticks(count) with the precision
// implied by the tick step.
func (s Linear) TickLabels(count int) []Tick {
	values := s.Ticks(count)
	decimals := stepDecimals(TickStep(s.Domain[0], s.Domain[1], count))
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{
			Value: v,
			Label: strconv.FormatFloat(v, 'f', decimals, 64),
			Pos:   s.Apply(v),
		}
	}
	return ticks
}

// Tick is one labelled axis mark.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Pos   float64 `json:"pos"`
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// jsRound rounds half up, matching the browser's Math.round.
func jsRound(x float64) float64 {
	return math.Floor(x + 0.5)
}

// tickSpec returns the integer tick bounds and the increment. A negative inc
// means the step is 1/-inc, which keeps sub-unit steps exact.
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = jsRound(start * inc)
		i2 = jsRound(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = jsRound(start / inc)
		i2 = jsRound(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// Ticks returns nicely rounded values between start and stop, inclusive.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	lo, hi := start, stop
	if reverse {
		lo, hi = stop, start
	}
	i1, i2, inc := tickSpec(lo, hi, float64(count))
	if !(i2 >= i1) || math.IsInf(inc, 0) || inc == 0 {
		return nil
	}
	n := int(i2 - i1 + 1)
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		k := i1 + float64(i)
		if reverse {
			k = i2 - float64(i)
		}
		if inc < 0 {
			ticks[i] = k / -inc
		} else {
			ticks[i] = k * inc
		}
	}
	return ticks
}

// TickStep returns the spacing between the values Ticks would produce.
func TickStep(start, stop float64, count int) float64 {
	if count <= 0 || start == stop {
		return 0
	}
	if stop < start {
		start, stop = stop, start
	}
	_, _, inc := tickSpec(start, stop, float64(count))
	if inc < 0 {
		return 1 / -inc
	}
	return inc
}

// stepDecimals is the number of fixed decimals needed to tell ticks apart.
func stepDecimals(step float64) int {
	if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return 0
	}
	d := -int(math.Floor(math.Log10(step) + 1e-9))
	if d < 0 {
		return 0
	}
	return d
}

// padDomain widens [lo,hi] by multiplicative margins, moving each end away
// from the data regardless of sign.
func padDomain(lo, hi float64, pad Padding) (float64, float64) {
	if lo >= 0 {
		lo *= pad.Lower
	} else {
		lo *= pad.Upper
	}
	if hi >= 0 {
		hi *= pad.Upper
	} else {
		hi *= pad.Lower
	}
	return lo, hi
}
