package insights

import (
	"lonnstall/internal/core"
	"lonnstall/internal/stats"
)

// OutlierView is the salary IQR analysis without the full record list.
type OutlierView struct {
	Q1      float64 `json:"q1"`
	Q3      float64 `json:"q3"`
	Lower   float64 `json:"lower"`
	Upper   float64 `json:"upper"`
	Count   int     `json:"count"`
	Percent int     `json:"percent"`
}

// Outliers runs IQR outlier detection over salary.
func Outliers(records []core.SalaryRecord) OutlierView {
	r := stats.DetectOutliers(records, stats.SalarySelector)
	return OutlierView{
		Q1:      r.Q1,
		Q3:      r.Q3,
		Lower:   r.Lower,
		Upper:   r.Upper,
		Count:   len(r.Outliers),
		Percent: stats.Percent(len(r.Outliers), len(records)),
	}
}

// SalaryTrend is the per-year progression up to twenty years of experience.
func SalaryTrend(records []core.SalaryRecord) []stats.YearTrend {
	return stats.TrendByExperienceYear(records, stats.DefaultTrendMaxYears)
}

// FieldTrends is the per-field salary curve with the default sample floor
// and checkpoints.
func FieldTrends(records []core.SalaryRecord) []stats.FieldTrend {
	return stats.TrendByFieldAndYearBucket(records, stats.DefaultFieldTrendMinSample, stats.DefaultYearCheckpoints)
}

// Dashboard is every view for one filtered subset.
type Dashboard struct {
	HasData        bool                 `json:"has_data"`
	Filter         core.FilterSpec      `json:"filter"`
	Overview       OverviewView         `json:"overview"`
	EntryLevel     EntryLevelView       `json:"entry_level"`
	Bands          []BandStat           `json:"bands"`
	GenderPayGap   []GenderGap          `json:"gender_pay_gap"`
	FieldGrowth    []FieldGrowthStat    `json:"field_growth"`
	Distribution   []DistributionBucket `json:"distribution"`
	Milestones     []Milestone          `json:"milestones"`
	EducationROI   []EducationLevel     `json:"education_roi"`
	BeginnerFields []BeginnerField      `json:"beginner_fields"`
	SalaryTrend    []stats.YearTrend    `json:"salary_trend"`
	FieldTrends    []stats.FieldTrend   `json:"field_trends"`
	Outliers       OutlierView          `json:"outliers"`
	CareerPaths    []CareerPath         `json:"career_paths"`
}

// Build composes every view for records, which is expected to be the result
// of applying filter. An empty subset yields HasData false and no
// aggregate is computed.
func Build(records []core.SalaryRecord, filter core.FilterSpec) Dashboard {
	if len(records) == 0 {
		return Dashboard{Filter: filter}
	}
	return Dashboard{
		HasData:        true,
		Filter:         filter,
		Overview:       Overview(records),
		EntryLevel:     EntryLevel(records),
		Bands:          ExperienceBandStats(records),
		GenderPayGap:   GenderPayGap(records),
		FieldGrowth:    FieldGrowth(records),
		Distribution:   SalaryDistribution(records),
		Milestones:     CareerMilestones(records),
		EducationROI:   EducationROI(records),
		BeginnerFields: BeginnerFields(records),
		SalaryTrend:    SalaryTrend(records),
		FieldTrends:    FieldTrends(records),
		Outliers:       Outliers(records),
		CareerPaths:    CareerPaths(),
	}
}
