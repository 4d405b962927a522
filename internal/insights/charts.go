package insights

import (
	"math"
	"sort"

	"lonnstall/internal/core"
	"lonnstall/internal/stats"
)

// BandStat summarises one non-empty experience band.
type BandStat struct {
	Band stats.Band `json:"band"`
	stats.Summary
	// Share is Mean relative to the highest band mean, 0..100.
	Share int `json:"share"`
}

// ExperienceBandStats summarises salaries per experience band, ordered by
// band rank. Empty bands are omitted.
func ExperienceBandStats(records []core.SalaryRecord) []BandStat {
	groups := stats.BucketByExperienceBand(records)
	out := make([]BandStat, 0, len(groups))
	var top float64
	for _, g := range groups {
		s, _ := stats.Summarize(stats.Salaries(g.Records))
		out = append(out, BandStat{Band: g.Band, Summary: s})
		top = math.Max(top, s.Mean)
	}
	for i := range out {
		out[i].Share = shareOf(out[i].Mean, top)
	}
	return out
}

// GenderGap compares male and female mean salary within one band.
type GenderGap struct {
	Band        stats.Band `json:"band"`
	MaleMean    float64    `json:"male_mean"`
	FemaleMean  float64    `json:"female_mean"`
	MaleCount   int        `json:"male_count"`
	FemaleCount int        `json:"female_count"`
	// Gap is the percentage by which male pay exceeds female pay; negative
	// values mean women earn more.
	Gap int `json:"gap"`
}

// GenderPayGap reports the gap per experience band. Only bands with at least
// one male and one female respondent are included.
func GenderPayGap(records []core.SalaryRecord) []GenderGap {
	out := make([]GenderGap, 0)
	for _, g := range stats.BucketByExperienceBand(records) {
		var male, female []float64
		for _, r := range g.Records {
			switch r.Gender {
			case core.GenderMale:
				male = append(male, r.Salary)
			case core.GenderFemale:
				female = append(female, r.Salary)
			}
		}
		if len(male) == 0 || len(female) == 0 {
			continue
		}
		gap := GenderGap{
			Band:        g.Band,
			MaleMean:    stats.Mean(male),
			FemaleMean:  stats.Mean(female),
			MaleCount:   len(male),
			FemaleCount: len(female),
		}
		gap.Gap = payGap(gap.MaleMean, gap.FemaleMean)
		out = append(out, gap)
	}
	return out
}

func payGap(male, female float64) int {
	if male == 0 || female == 0 {
		return 0
	}
	return int(stats.Round((male - female) / male * 100))
}

// FieldGrowthStat compares entry-level and experienced pay within a field.
type FieldGrowthStat struct {
	Field       string  `json:"field"`
	EntryMean   float64 `json:"entry_mean"`
	SeniorMean  float64 `json:"senior_mean"`
	EntryCount  int     `json:"entry_count"`
	SeniorCount int     `json:"senior_count"`
	Growth      int     `json:"growth"`
}

// FieldGrowth compares entry-level (<= 2 years) and experienced (>= 5 years)
// pay per field. Fields missing either cohort are excluded. The result is
// ordered by growth descending, ties in discovery order.
func FieldGrowth(records []core.SalaryRecord) []FieldGrowthStat {
	out := make([]FieldGrowthStat, 0)
	stats.GroupBy(records, func(r core.SalaryRecord) string { return r.Field }).
		Each(func(field string, rs []core.SalaryRecord) {
			var entry, senior []float64
			for _, r := range rs {
				if r.IsEntryLevel() {
					entry = append(entry, r.Salary)
				}
				if r.IsExperienced() {
					senior = append(senior, r.Salary)
				}
			}
			if len(entry) == 0 || len(senior) == 0 {
				return
			}
			s := FieldGrowthStat{
				Field:       field,
				EntryMean:   stats.Mean(entry),
				SeniorMean:  stats.Mean(senior),
				EntryCount:  len(entry),
				SeniorCount: len(senior),
			}
			s.Growth = stats.Growth(s.EntryMean, s.SeniorMean)
			out = append(out, s)
		})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Growth > out[j].Growth })
	return out
}

// DistributionBucket is one histogram bar. Min is inclusive and Max
// exclusive; the last bucket has Max of +Inf.
type DistributionBucket struct {
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"-"`
	Count   int     `json:"count"`
	Percent int     `json:"percent"`
}

var salaryBuckets = []DistributionBucket{
	{Label: "Under 500k", Min: 0, Max: 500000},
	{Label: "500k - 700k", Min: 500000, Max: 700000},
	{Label: "700k - 900k", Min: 700000, Max: 900000},
	{Label: "900k - 1.2M", Min: 900000, Max: 1200000},
	{Label: "1.2M - 1.5M", Min: 1200000, Max: 1500000},
	{Label: "Over 1.5M", Min: 1500000, Max: math.Inf(1)},
}

// SalaryDistribution counts salaries per fixed bucket. All six buckets are
// always returned.
func SalaryDistribution(records []core.SalaryRecord) []DistributionBucket {
	out := make([]DistributionBucket, len(salaryBuckets))
	copy(out, salaryBuckets)
	for _, r := range records {
		for i := range out {
			if r.Salary >= out[i].Min && r.Salary < out[i].Max {
				out[i].Count++
				break
			}
		}
	}
	for i := range out {
		out[i].Percent = stats.Percent(out[i].Count, len(records))
	}
	return out
}
