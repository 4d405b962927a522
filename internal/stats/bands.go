package stats

import (
	"math"

	"lonnstall/internal/core"
)

// Band is one of the fixed experience classes used by the pay-gap and
// progression views. Min and Max are inclusive.
type Band struct {
	Label string `json:"label"`
	Rank  int    `json:"rank"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

// Contains reports whether years falls inside b.
func (b Band) Contains(years int) bool {
	return years >= b.Min && years <= b.Max
}

// ExperienceBands partitions all non-negative experience values. The slice is
// ordered by Rank.
var ExperienceBands = []Band{
	{Label: "0 år (nyutdannet)", Rank: 1, Min: 0, Max: 0},
	{Label: "1-2 år (entry-level)", Rank: 2, Min: 1, Max: 2},
	{Label: "3-5 år (junior)", Rank: 3, Min: 3, Max: 5},
	{Label: "6-10 år (senior)", Rank: 4, Min: 6, Max: 10},
	{Label: "11-15 år (lead)", Rank: 5, Min: 11, Max: 15},
	{Label: "15+ år (expert)", Rank: 6, Min: 16, Max: math.MaxInt},
}

// BandFor returns the band containing years. Negative values, which
// validated records never carry, fall into the first band.
func BandFor(years int) Band {
	for _, b := range ExperienceBands {
		if b.Contains(years) {
			return b
		}
	}
	return ExperienceBands[0]
}

// BandGroup is a non-empty band together with its records.
type BandGroup struct {
	Band    Band
	Records []core.SalaryRecord
}

// BucketByExperienceBand classifies every record into exactly one band and
// returns the non-empty bands ordered by rank.
func BucketByExperienceBand(records []core.SalaryRecord) []BandGroup {
	buckets := make([][]core.SalaryRecord, len(ExperienceBands))
	for _, r := range records {
		b := BandFor(r.YearsExperience)
		buckets[b.Rank-1] = append(buckets[b.Rank-1], r)
	}
	out := make([]BandGroup, 0, len(ExperienceBands))
	for i, rs := range buckets {
		if len(rs) == 0 {
			continue
		}
		out = append(out, BandGroup{Band: ExperienceBands[i], Records: rs})
	}
	return out
}
