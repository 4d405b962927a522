// Package stats holds the pure aggregation functions used by every salary
// view: central tendency, grouping, percentiles, outliers, experience bands
// and trends. Nothing here performs I/O or keeps state.
package stats

import (
	"math"
	"slices"

	"lonnstall/internal/core"
)

// Selector extracts the numeric value being aggregated from a record.
type Selector func(core.SalaryRecord) float64

// SalarySelector selects the annual salary.
func SalarySelector(r core.SalaryRecord) float64 { return r.Salary }

// Values projects records through sel.
func Values(records []core.SalaryRecord, sel Selector) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = sel(r)
	}
	return out
}

// Salaries is shorthand for Values(records, SalarySelector).
func Salaries(records []core.SalaryRecord) []float64 {
	return Values(records, SalarySelector)
}

// Round rounds half away from negative infinity, so -2.5 becomes -2 and
// 2.5 becomes 3.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Mean returns the arithmetic mean rounded to the nearest integer, or 0 for
// an empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Round(sum / float64(len(values)))
}

// Median returns the element at index n/2 of the sorted values. For even
// lengths this is the upper of the two middle elements, not their average.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := sortedCopy(values)
	return sorted[len(sorted)/2]
}

// MinMax returns the smallest and largest value, or zeros for an empty input.
func MinMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Summary bundles the usual descriptive statistics of a non-empty group.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes a Summary. ok is false when values is empty, in which
// case the zero Summary is returned.
func Summarize(values []float64) (s Summary, ok bool) {
	if len(values) == 0 {
		return Summary{}, false
	}
	lo, hi := MinMax(values)
	return Summary{
		Count:  len(values),
		Mean:   Mean(values),
		Median: Median(values),
		Min:    lo,
		Max:    hi,
	}, true
}

// Percent returns round(part/total*100), or 0 when total is 0.
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(Round(float64(part) / float64(total) * 100))
}

// Growth returns round((to-from)/from*100). It returns 0 when either side is
// zero, which is how an empty cohort is represented.
func Growth(from, to float64) int {
	if from == 0 || to == 0 {
		return 0
	}
	return int(Round((to - from) / from * 100))
}

func sortedCopy(values []float64) []float64 {
	out := slices.Clone(values)
	slices.Sort(out)
	return out
}
