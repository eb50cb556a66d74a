// Package numstats computes descriptive statistics over numeric input lines.
package numstats

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"textmetrics/internal/model"
)

// Summary holds the computed statistics. All float fields are NaN when
// Count is 0.
type Summary struct {
	Count    int
	Mean     float64
	Median   float64
	Mode     float64
	Variance float64
	StdDev   float64
}

// Accumulator collects valid numbers and invalid lines from the input.
type Accumulator struct {
	values  []float64
	invalid []model.LineError
}

// New returns an empty accumulator.
func New() *Accumulator {
	return &Accumulator{}
}

// Add parses one input line. A line that does not parse as a float is
// recorded as invalid and the run continues.
func (a *Accumulator) Add(line model.Line) error {
	text := strings.TrimSpace(line.Text)
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		a.invalid = append(a.invalid, model.LineError{Line: line.Num, Text: line.Text})
		return nil
	}
	a.values = append(a.values, value)
	return nil
}

// Invalid returns the lines that failed to parse, in input order.
func (a *Accumulator) Invalid() []model.LineError {
	return a.invalid
}

// Count returns the number of valid values collected so far.
func (a *Accumulator) Count() int {
	return len(a.values)
}

// Summarize computes all statistics. Variance is the population
// variance (mean squared deviation). Mode ties are broken by the value
// first encountered in the input.
func (a *Accumulator) Summarize() Summary {
	n := len(a.values)
	if n == 0 {
		nan := math.NaN()
		return Summary{Count: 0, Mean: nan, Median: nan, Mode: nan, Variance: nan, StdDev: nan}
	}

	var sum float64
	for _, v := range a.values {
		sum += v
	}
	mean := sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, a.values)
	sort.Float64s(sorted)
	mid := n / 2
	median := sorted[mid]
	if n%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	var variance float64
	for _, v := range a.values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)

	return Summary{
		Count:    n,
		Mean:     mean,
		Median:   median,
		Mode:     a.mode(),
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}
}

func (a *Accumulator) mode() float64 {
	counts := make(map[float64]int, len(a.values))
	for _, v := range a.values {
		counts[v]++
	}
	best := a.values[0]
	bestCount := counts[best]
	for _, v := range a.values {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}
