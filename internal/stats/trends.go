package stats

import (
	"sort"

	"lonnstall/internal/core"
)

const (
	DefaultTrendMaxYears       = 20
	DefaultFieldTrendMinSample = 10
	MaxTrendFields             = 6
	yearBucketWidth            = 2
)

// DefaultYearCheckpoints are the experience checkpoints used by field trends.
var DefaultYearCheckpoints = []int{0, 1, 2, 3, 5, 7, 10, 15}

// YearTrend summarises the records with one exact experience year.
type YearTrend struct {
	Years int `json:"years"`
	Summary
}

// TrendByExperienceYear groups records by exact experience year, keeps years
// up to maxYears and returns them ascending. Years without records are
// omitted.
func TrendByExperienceYear(records []core.SalaryRecord, maxYears int) []YearTrend {
	groups := GroupBy(records, func(r core.SalaryRecord) int { return r.YearsExperience })
	out := make([]YearTrend, 0, groups.Len())
	groups.Each(func(year int, rs []core.SalaryRecord) {
		if year > maxYears {
			return
		}
		s, ok := Summarize(Salaries(rs))
		if !ok {
			return
		}
		out = append(out, YearTrend{Years: year, Summary: s})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Years < out[j].Years })
	return out
}

// TrendPoint is the mean salary at one experience checkpoint.
type TrendPoint struct {
	Years int     `json:"years"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// FieldTrend is the salary curve of one field.
type FieldTrend struct {
	Field  string       `json:"field"`
	Points []TrendPoint `json:"points"`
}

// TrendByFieldAndYearBucket builds salary curves for fields with at least
// minSampleSize records. Each checkpoint c covers experience in [c, c+2).
// Empty checkpoints are omitted and at most MaxTrendFields fields are
// returned, in the order they were first seen. A qualifying field whose
// records miss every checkpoint is still returned, with no points, and
// counts toward MaxTrendFields.
func TrendByFieldAndYearBucket(records []core.SalaryRecord, minSampleSize int, checkpoints []int) []FieldTrend {
	byField := GroupBy(records, func(r core.SalaryRecord) string { return r.Field })
	out := make([]FieldTrend, 0, MaxTrendFields)
	byField.Each(func(field string, rs []core.SalaryRecord) {
		if len(out) >= MaxTrendFields || len(rs) < minSampleSize {
			return
		}
		trend := FieldTrend{Field: field, Points: make([]TrendPoint, 0, len(checkpoints))}
		for _, c := range checkpoints {
			var window []float64
			for _, r := range rs {
				if r.YearsExperience >= c && r.YearsExperience < c+yearBucketWidth {
					window = append(window, r.Salary)
				}
			}
			if len(window) == 0 {
				continue
			}
			trend.Points = append(trend.Points, TrendPoint{Years: c, Mean: Mean(window), Count: len(window)})
		}
		out = append(out, trend)
	})
	return out
}
