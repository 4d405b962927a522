package insights

import (
	"sort"

	"lonnstall/internal/core"
	"lonnstall/internal/stats"
)

const (
	topEntryFields    = 6
	topEntryLocations = 8
)

// GroupStat is the mean salary and size of a labelled group.
type GroupStat struct {
	Label string  `json:"label"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// EducationStat is the mean entry-level salary for one number of years of
// education.
type EducationStat struct {
	Years int     `json:"years"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// EntryLevelView describes the entry-level (<= 2 years) and fresh graduate
// (0 years) cohorts. The cohorts overlap.
type EntryLevelView struct {
	HasData            bool            `json:"has_data"`
	EntryCount         int             `json:"entry_count"`
	EntryMean          float64         `json:"entry_mean"`
	EntryMedian        float64         `json:"entry_median"`
	FreshGradCount     int             `json:"fresh_grad_count"`
	FreshGradMean      float64         `json:"fresh_grad_mean"`
	VariablePayPercent int             `json:"variable_pay_percent"`
	TopFields          []Count         `json:"top_fields"`
	ByEducation        []EducationStat `json:"by_education"`
	TopLocations       []GroupStat     `json:"top_locations"`
}

// EntryLevel builds the student and graduate view. HasData is false when
// the subset has no entry-level records.
func EntryLevel(records []core.SalaryRecord) EntryLevelView {
	var entry []core.SalaryRecord
	var fresh []float64
	for _, r := range records {
		if r.IsEntryLevel() {
			entry = append(entry, r)
		}
		if r.IsFreshGraduate() {
			fresh = append(fresh, r.Salary)
		}
	}
	view := EntryLevelView{
		TopFields:    []Count{},
		ByEducation:  []EducationStat{},
		TopLocations: []GroupStat{},
	}
	if len(entry) == 0 {
		return view
	}

	salaries := stats.Salaries(entry)
	variable := 0
	for _, r := range entry {
		if r.HasVariablePay() {
			variable++
		}
	}
	view.HasData = true
	view.EntryCount = len(entry)
	view.EntryMean = stats.Mean(salaries)
	view.EntryMedian = stats.Median(salaries)
	view.FreshGradCount = len(fresh)
	view.FreshGradMean = stats.Mean(fresh)
	view.VariablePayPercent = stats.Percent(variable, len(entry))
	view.TopFields = topCounts(stats.CountBy(entry, func(r core.SalaryRecord) string { return r.Field }), len(entry), topEntryFields)

	stats.GroupBy(entry, func(r core.SalaryRecord) int { return r.YearsEducation }).
		Each(func(years int, rs []core.SalaryRecord) {
			view.ByEducation = append(view.ByEducation, EducationStat{Years: years, Mean: stats.Mean(stats.Salaries(rs)), Count: len(rs)})
		})
	sort.Slice(view.ByEducation, func(i, j int) bool { return view.ByEducation[i].Years < view.ByEducation[j].Years })

	stats.GroupBy(entry, func(r core.SalaryRecord) string { return r.Location }).
		Each(func(loc string, rs []core.SalaryRecord) {
			view.TopLocations = append(view.TopLocations, GroupStat{Label: loc, Mean: stats.Mean(stats.Salaries(rs)), Count: len(rs)})
		})
	sort.SliceStable(view.TopLocations, func(i, j int) bool { return view.TopLocations[i].Count > view.TopLocations[j].Count })
	if len(view.TopLocations) > topEntryLocations {
		view.TopLocations = view.TopLocations[:topEntryLocations]
	}
	return view
}
