// Package stats provides the numeric helpers exposed to generated analysis
// code. All functions are pure and skip NaN values, so a column with
// missing entries can be summarised without pre-filtering.
package stats

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrEmpty is returned when no non-NaN values are available.
	ErrEmpty = errors.New("stats: empty input")

	// ErrLengthMismatch is returned when paired inputs differ in length.
	ErrLengthMismatch = errors.New("stats: length mismatch")

	// ErrInsufficientData is returned when an estimator needs more samples.
	ErrInsufficientData = errors.New("stats: insufficient data")

	// ErrQuantileRange is returned for q outside [0, 1].
	ErrQuantileRange = errors.New("stats: quantile out of range")
)

// clean returns the non-NaN values of xs.
func clean(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// Sum returns the sum of xs. An empty input sums to zero.
func Sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		if !math.IsNaN(x) {
			s += x
		}
	}
	return s
}

// Count returns the number of non-NaN values.
func Count(xs []float64) int {
	return len(clean(xs))
}

// Mean returns the arithmetic mean.
func Mean(xs []float64) (float64, error) {
	c := clean(xs)
	if len(c) == 0 {
		return math.NaN(), ErrEmpty
	}
	return Sum(c) / float64(len(c)), nil
}

// Median returns the 0.5 quantile.
func Median(xs []float64) (float64, error) {
	return Quantile(xs, 0.5)
}

// Quantile returns the q-th quantile using linear interpolation between
// closest ranks.
func Quantile(xs []float64, q float64) (float64, error) {
	if q < 0 || q > 1 || math.IsNaN(q) {
		return math.NaN(), ErrQuantileRange
	}
	c := clean(xs)
	if len(c) == 0 {
		return math.NaN(), ErrEmpty
	}
	sort.Float64s(c)
	pos := q * float64(len(c)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return c[lo], nil
	}
	frac := pos - float64(lo)
	return c[lo] + (c[hi]-c[lo])*frac, nil
}

// Var returns the sample variance (n-1 denominator).
func Var(xs []float64) (float64, error) {
	c := clean(xs)
	if len(c) == 0 {
		return math.NaN(), ErrEmpty
	}
	if len(c) < 2 {
		return math.NaN(), ErrInsufficientData
	}
	m := Sum(c) / float64(len(c))
	var ss float64
	for _, x := range c {
		d := x - m
		ss += d * d
	}
	return ss / float64(len(c)-1), nil
}

// Std returns the sample standard deviation.
func Std(xs []float64) (float64, error) {
	v, err := Var(xs)
	if err != nil {
		return math.NaN(), err
	}
	return math.Sqrt(v), nil
}

// Min returns the smallest value.
func Min(xs []float64) (float64, error) {
	c := clean(xs)
	if len(c) == 0 {
		return math.NaN(), ErrEmpty
	}
	m := c[0]
	for _, x := range c[1:] {
		if x < m {
			m = x
		}
	}
	return m, nil
}

// Max returns the largest value.
func Max(xs []float64) (float64, error) {
	c := clean(xs)
	if len(c) == 0 {
		return math.NaN(), ErrEmpty
	}
	m := c[0]
	for _, x := range c[1:] {
		if x > m {
			m = x
		}
	}
	return m, nil
}

// Corr returns the Pearson correlation of x and y. Pairs where either side
// is NaN are dropped.
func Corr(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return math.NaN(), ErrLengthMismatch
	}
	var px, py []float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		px = append(px, x[i])
		py = append(py, y[i])
	}
	if len(px) < 2 {
		return math.NaN(), ErrInsufficientData
	}
	mx := Sum(px) / float64(len(px))
	my := Sum(py) / float64(len(py))
	var sxy, sxx, syy float64
	for i := range px {
		dx, dy := px[i]-mx, py[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN(), nil
	}
	return sxy / math.Sqrt(sxx*syy), nil
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// PctChange returns the fractional change between consecutive values.
// The first element is always NaN.
func PctChange(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		if i == 0 || xs[i-1] == 0 || math.IsNaN(xs[i-1]) || math.IsNaN(xs[i]) {
			out[i] = math.NaN()
			continue
		}
		out[i] = (xs[i] - xs[i-1]) / xs[i-1]
	}
	return out
}
