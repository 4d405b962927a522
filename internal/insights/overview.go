// Package insights composes the aggregation primitives in stats into the
// views shown on the dashboard. Every builder is a pure function of the
// filtered records.
package insights

import (
	"sort"

	"lonnstall/internal/core"
	"lonnstall/internal/stats"
)

const topOverviewFields = 5

// Count is a labelled tally with its share of the whole.
type Count struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// OverviewView holds the headline numbers for the filtered subset.
type OverviewView struct {
	Respondents int           `json:"respondents"`
	Salary      stats.Summary `json:"salary"`
	Genders     []Count       `json:"genders"`
	TopFields   []Count       `json:"top_fields"`
}

// Overview summarises salaries, gender distribution and the five most common
// fields. Genders appear in discovery order.
func Overview(records []core.SalaryRecord) OverviewView {
	summary, _ := stats.Summarize(stats.Salaries(records))
	total := len(records)
	return OverviewView{
		Respondents: total,
		Salary:      summary,
		Genders:     countsOf(stats.CountBy(records, func(r core.SalaryRecord) string { return r.Gender }), total),
		TopFields:   topCounts(stats.CountBy(records, func(r core.SalaryRecord) string { return r.Field }), total, topOverviewFields),
	}
}

func countsOf(m *stats.OrderedMap[string, int], total int) []Count {
	out := make([]Count, 0, m.Len())
	m.Each(func(label string, n int) {
		out = append(out, Count{Label: label, Count: n, Percent: stats.Percent(n, total)})
	})
	return out
}

// topCounts orders by count descending, ties keeping discovery order, and
// keeps the first limit entries.
func topCounts(m *stats.OrderedMap[string, int], total, limit int) []Count {
	out := countsOf(m, total)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
