// Package stats provides the statistics primitives of the price engine:
// mean, median, standard deviation and coefficient of variation over a
// sample of positive prices.
package stats

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
)

// ErrInsufficientData is returned when a statistic is requested over an
// empty sample. Callers must never receive a zero or NaN stand-in.
var ErrInsufficientData = eris.New("insufficient data for statistics")

// CVUndefined is the sentinel reported when the coefficient of variation
// is undefined (mean of zero). It cannot occur for positive samples but
// is guarded regardless.
const CVUndefined = -1

// Summary holds the descriptive statistics of one price sample.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	CV     float64 `json:"cv"`
}

// Describe computes the summary of sample. When sample is set, the
// standard deviation uses the n-1 (sample) divisor instead of the
// population divisor. Empty input fails with ErrInsufficientData.
func Describe(prices []float64, sample bool) (Summary, error) {
	if len(prices) == 0 {
		return Summary{}, eris.Wrap(ErrInsufficientData, "stats: empty sample")
	}

	mean := Mean(prices)
	sd := StdDev(prices, sample)

	cv := float64(CVUndefined)
	if mean > 0 {
		cv = sd / mean
	}

	return Summary{
		Count:  len(prices),
		Mean:   mean,
		Median: Median(prices),
		StdDev: sd,
		CV:     cv,
	}, nil
}

// Mean returns the arithmetic mean. Panics on empty input are avoided by
// Describe; direct callers must check length themselves.
func Mean(prices []float64) float64 {
	sum := 0.0
	for _, p := range prices {
		sum += p
	}
	return sum / float64(len(prices))
}

// Median returns the middle value, linearly interpolated for even counts.
// The input slice is not modified.
func Median(prices []float64) float64 {
	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// StdDev returns the standard deviation. A single-element sample has a
// deviation of zero in both variants.
func StdDev(prices []float64, sample bool) float64 {
	n := len(prices)
	if n < 2 {
		return 0
	}
	mean := Mean(prices)
	ss := 0.0
	for _, p := range prices {
		d := p - mean
		ss += d * d
	}
	div := float64(n)
	if sample {
		div = float64(n - 1)
	}
	return math.Sqrt(ss / div)
}
