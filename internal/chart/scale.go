package chart

import (
	"math"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// LinearScale maps a continuous domain onto a continuous range.
type LinearScale struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinearScale creates a LinearScale.
func NewLinearScale(domain, rng [2]float64) LinearScale {
	return LinearScale{Domain: domain, Range: rng}
}

// Map returns the range value for v. A degenerate domain maps everything to
// the middle of the range.
func (s LinearScale) Map(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	if d1 == d0 {
		return r0 + (r1-r0)/2
	}
	return r0 + (v-d0)/(d1-d0)*(r1-r0)
}

// Ticks returns roughly count human-friendly values spaced by 1, 2 or 5 times
// a power of ten, all inside the domain.
func (s LinearScale) Ticks(count int) []float64 {
	return Ticks(s.Domain[0], s.Domain[1], count)
}

// Ticks returns evenly spaced round values between start and stop inclusive.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}

	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	i1, i2, inc := tickSpec(start, stop, float64(count))
	if i2 < i1 {
		return nil
	}

	ticks := make([]float64, 0, int(i2-i1)+1)
	for i := i1; i <= i2; i++ {
		if inc < 0 {
			ticks = append(ticks, i/-inc)
		} else {
			ticks = append(ticks, i*inc)
		}
	}

	if reverse {
		for l, r := 0, len(ticks)-1; l < r; l, r = l+1, r-1 {
			ticks[l], ticks[r] = ticks[r], ticks[l]
		}
	}
	return ticks
}

// TickStep returns the spacing Ticks would use.
func TickStep(start, stop float64, count int) float64 {
	if count <= 0 || start == stop {
		return 0
	}
	if stop < start {
		start, stop = stop, start
	}
	_, _, inc := tickSpec(start, stop, float64(count))
	if inc < 0 {
		return -1 / inc
	}
	return inc
}

// tickSpec returns the first and last tick index and the increment. A negative
// increment means ticks are i / -inc, which keeps small steps exact.
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
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

// BandScale divides a continuous range into uniform bands, one per domain
// value, in domain order.
type BandScale struct {
	domain    []string
	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBandScale lays out len(domain) bands across rng. padding is used as both
// inner and outer padding. With round set, step, start and bandwidth are
// snapped to whole pixels. align positions leftover space (0.5 centers it).
func NewBandScale(domain []string, rng [2]float64, padding float64, round bool, align float64) BandScale {
	s := BandScale{
		domain: domain,
		index:  make(map[string]int, len(domain)),
	}
	for i, d := range domain {
		if _, dup := s.index[d]; !dup {
			s.index[d] = i
		}
	}

	n := float64(len(domain))
	start, stop := rng[0], rng[1]
	if stop < start {
		start, stop = stop, start
	}

	step := (stop - start) / math.Max(1, n-padding+padding*2)
	if round {
		step = math.Floor(step)
	}
	start += (stop - start - step*(n-padding)) * align
	bandwidth := step * (1 - padding)
	if round {
		start = math.Round(start)
		bandwidth = math.Round(bandwidth)
	}

	s.start = start
	s.step = step
	s.bandwidth = bandwidth
	return s
}

// Map returns the start of the band for v.
func (s BandScale) Map(v string) (float64, bool) {
	i, ok := s.index[v]
	if !ok {
		return 0, false
	}
	return s.start + s.step*float64(i), true
}

// Bandwidth returns the width of each band.
func (s BandScale) Bandwidth() float64 {
	return s.bandwidth
}

// Step returns the distance between the starts of adjacent bands.
func (s BandScale) Step() float64 {
	return s.step
}
