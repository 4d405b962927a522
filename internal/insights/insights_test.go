package insights

import (
	"encoding/json"
	"testing"

	"lonnstall/internal/core"
)

func r(gender string, edu, exp int, field string, salary float64) core.SalaryRecord {
	return core.SalaryRecord{
		Gender:          gender,
		YearsEducation:  edu,
		YearsExperience: exp,
		Location:        "Oslo",
		JobType:         "fast",
		Field:           field,
		Salary:          salary,
	}
}

func TestCareerMilestonesScenario(t *testing.T) {
	records := []core.SalaryRecord{
		r("mann", 3, 0, "backend", 600000),
		r("mann", 3, 1, "backend", 650000),
		r("mann", 3, 5, "backend", 900000),
		r("mann", 3, 10, "backend", 1100000),
	}
	ms := CareerMilestones(records)
	if len(ms) != 5 {
		t.Fatalf("expected all five milestones, got %d", len(ms))
	}
	want := []struct {
		years   int
		hasData bool
		mean    float64
	}{
		{0, true, 600000},
		{2, true, 650000},
		{5, true, 900000},
		{10, true, 1100000},
		{15, false, 0},
	}
	nonEmpty := 0
	for i, w := range want {
		m := ms[i]
		if m.Years != w.years || m.HasData != w.hasData || m.Mean != w.mean {
			t.Fatalf("milestone %d = %+v, want %+v", i, m, w)
		}
		if m.HasData {
			nonEmpty++
			if m.Count != 1 {
				t.Fatalf("milestone %d count = %d", i, m.Count)
			}
		}
	}
	if nonEmpty != 4 {
		t.Fatalf("expected 4 non-empty milestones, got %d", nonEmpty)
	}
	if ms[4].Description != noMilestoneData {
		t.Fatalf("empty milestone description = %q", ms[4].Description)
	}
}

func TestMilestonesAndBandsStayDistinct(t *testing.T) {
	// 4 years is "3-5 år" as a band but belongs to the 5-year milestone.
	records := []core.SalaryRecord{r("mann", 3, 4, "backend", 800000)}
	ms := CareerMilestones(records)
	if !ms[2].HasData || ms[1].HasData {
		t.Fatalf("4 years should land in the 4-7 milestone: %+v", ms)
	}
	bands := ExperienceBandStats(records)
	if len(bands) != 1 || bands[0].Band.Rank != 3 {
		t.Fatalf("4 years should land in the 3-5 band: %+v", bands)
	}
}

func TestGenderPayGapScenario(t *testing.T) {
	records := []core.SalaryRecord{
		r(core.GenderMale, 3, 7, "backend", 800000),
		r(core.GenderFemale, 3, 8, "backend", 700000),
	}
	gaps := GenderPayGap(records)
	if len(gaps) != 1 {
		t.Fatalf("expected one band, got %+v", gaps)
	}
	if gaps[0].Gap != 13 {
		t.Fatalf("gap = %d, want 13", gaps[0].Gap)
	}
	if gaps[0].MaleCount != 1 || gaps[0].FemaleCount != 1 {
		t.Fatalf("counts = %+v", gaps[0])
	}
}

func TestGenderPayGapSkipsSingleGenderBands(t *testing.T) {
	records := []core.SalaryRecord{
		r(core.GenderMale, 3, 0, "backend", 600000),
		r(core.GenderMale, 3, 20, "backend", 1500000),
		r(core.GenderFemale, 3, 20, "backend", 1600000),
	}
	gaps := GenderPayGap(records)
	if len(gaps) != 1 || gaps[0].Band.Rank != 6 {
		t.Fatalf("expected only the expert band, got %+v", gaps)
	}
	if gaps[0].Gap >= 0 {
		t.Fatalf("women earn more here, gap = %d", gaps[0].Gap)
	}
}

func TestEducationROI(t *testing.T) {
	records := []core.SalaryRecord{
		r("mann", 0, 1, "frontend", 500000),
		r("mann", 1, 6, "frontend", 1000000),
		r("kvinne", 5, 0, "backend", 650000),
		r("kvinne", 6, 3, "backend", 750000),
	}
	levels := EducationROI(records)
	if len(levels) != 2 {
		t.Fatalf("expected bootcamp and master levels, got %+v", levels)
	}
	boot := levels[0]
	if boot.Level != 0 || boot.Description != "Selvlært / Bootcamp" || boot.Count != 2 {
		t.Fatalf("bootcamp = %+v", boot)
	}
	if boot.EntryMean != 500000 || boot.SeniorMean != 1000000 || boot.Growth != 100 {
		t.Fatalf("bootcamp growth = %+v", boot)
	}
	master := levels[1]
	if master.Level != 5 || master.SeniorMean != 0 || master.Growth != 0 {
		t.Fatalf("master without experienced cohort must have zero growth: %+v", master)
	}
}

func TestEntryLevel(t *testing.T) {
	records := []core.SalaryRecord{
		r("mann", 3, 0, "backend", 600000),
		r("kvinne", 5, 1, "frontend", 640000),
		r("mann", 3, 2, "backend", 700000),
		r("mann", 3, 9, "backend", 1200000),
	}
	records[1].HasBonus = true
	records[1].Location = "Bergen"

	v := EntryLevel(records)
	if !v.HasData || v.EntryCount != 3 || v.FreshGradCount != 1 {
		t.Fatalf("cohorts = %+v", v)
	}
	if v.EntryMean != 646667 || v.EntryMedian != 640000 || v.FreshGradMean != 600000 {
		t.Fatalf("means = %+v", v)
	}
	if v.VariablePayPercent != 33 {
		t.Fatalf("variable pay = %d", v.VariablePayPercent)
	}
	if len(v.TopFields) != 2 || v.TopFields[0].Label != "backend" || v.TopFields[0].Count != 2 {
		t.Fatalf("top fields = %+v", v.TopFields)
	}
	if len(v.ByEducation) != 2 || v.ByEducation[0].Years != 3 || v.ByEducation[1].Years != 5 {
		t.Fatalf("by education = %+v", v.ByEducation)
	}
	if len(v.TopLocations) != 2 || v.TopLocations[0].Label != "Oslo" {
		t.Fatalf("locations = %+v", v.TopLocations)
	}
}

func TestEntryLevelEmpty(t *testing.T) {
	v := EntryLevel([]core.SalaryRecord{r("mann", 3, 9, "backend", 1200000)})
	if v.HasData || v.EntryMean != 0 {
		t.Fatalf("expected no data, got %+v", v)
	}
}

func TestFieldGrowth(t *testing.T) {
	records := []core.SalaryRecord{
		r("mann", 3, 0, "frontend", 600000),
		r("mann", 3, 6, "frontend", 780000),
		r("mann", 3, 1, "backend", 600000),
		r("mann", 3, 8, "backend", 900000),
		r("mann", 3, 1, "app", 500000),
		r("mann", 3, 3, "app", 800000),
	}
	got := FieldGrowth(records)
	if len(got) != 2 {
		t.Fatalf("app has no experienced cohort and must be excluded: %+v", got)
	}
	if got[0].Field != "backend" || got[0].Growth != 50 || got[1].Field != "frontend" || got[1].Growth != 30 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestSalaryDistributionHalfOpen(t *testing.T) {
	records := []core.SalaryRecord{
		r("mann", 3, 1, "x", 499999),
		r("mann", 3, 1, "x", 500000),
		r("mann", 3, 1, "x", 1500000),
		r("mann", 3, 1, "x", 9000000),
	}
	buckets := SalaryDistribution(records)
	if len(buckets) != 6 {
		t.Fatalf("expected six buckets")
	}
	counts := []int{1, 1, 0, 0, 0, 2}
	for i, want := range counts {
		if buckets[i].Count != want {
			t.Fatalf("bucket %s count = %d, want %d", buckets[i].Label, buckets[i].Count, want)
		}
	}
	if buckets[5].Percent != 50 || buckets[0].Percent != 25 {
		t.Fatalf("percentages = %+v", buckets)
	}
}

func TestBeginnerFields(t *testing.T) {
	var records []core.SalaryRecord
	for i := 0; i < 3; i++ {
		records = append(records, r("mann", 3, i, "frontend", 600000))
		records = append(records, r("mann", 3, i, "data science", 700000))
	}
	records = append(records, r("mann", 3, 1, "sikkerhet", 900000))
	records = append(records, r("mann", 3, 10, "frontend", 900000))
	records = append(records, r("mann", 3, 0, "ukjent", 500000), r("mann", 3, 0, "ukjent", 500000), r("mann", 3, 0, "ukjent", 500000))

	got := BeginnerFields(records)
	if len(got) != 3 {
		t.Fatalf("expected three qualifying fields, got %+v", got)
	}
	if got[0].Field != "data science" || got[0].Difficulty != DifficultyHigh || got[0].Growth != 0 || got[0].Share != 100 {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].Field != "frontend" || got[1].Difficulty != DifficultyLow || got[1].Growth != 50 {
		t.Fatalf("second = %+v", got[1])
	}
	if got[2].Difficulty != DifficultyMedium {
		t.Fatalf("unknown field should default to medium: %+v", got[2])
	}
}

func TestBeginnerFieldsTiesFollowEntryLevelOrder(t *testing.T) {
	records := []core.SalaryRecord{
		r("mann", 3, 9, "backend", 1000000),
		r("mann", 3, 0, "frontend", 600000),
		r("mann", 3, 1, "frontend", 600000),
		r("mann", 3, 2, "frontend", 600000),
		r("mann", 3, 0, "backend", 600000),
		r("mann", 3, 1, "backend", 600000),
		r("mann", 3, 2, "backend", 600000),
	}
	got := BeginnerFields(records)
	if len(got) != 2 || got[0].Field != "frontend" || got[1].Field != "backend" {
		t.Fatalf("equal entry means should keep entry-level discovery order: %+v", got)
	}
	if got[1].Growth != 67 {
		t.Fatalf("backend growth = %d, want 67", got[1].Growth)
	}
}

func TestOverview(t *testing.T) {
	records := []core.SalaryRecord{
		r("kvinne", 3, 1, "a", 100),
		r("mann", 3, 1, "b", 200),
		r("mann", 3, 1, "b", 300),
		r("mann", 3, 1, "c", 400),
	}
	o := Overview(records)
	if o.Respondents != 4 || o.Salary.Mean != 250 || o.Salary.Median != 300 {
		t.Fatalf("overview = %+v", o)
	}
	if len(o.Genders) != 2 || o.Genders[0].Label != "kvinne" || o.Genders[1].Percent != 75 {
		t.Fatalf("genders = %+v", o.Genders)
	}
	if o.TopFields[0].Label != "b" || o.TopFields[1].Label != "a" {
		t.Fatalf("top fields must be by count, ties in discovery order: %+v", o.TopFields)
	}
}

func TestBuildEmpty(t *testing.T) {
	d := Build(nil, core.DefaultFilter())
	if d.HasData {
		t.Fatalf("empty subset must not have data")
	}
	if _, err := json.Marshal(d); err != nil {
		t.Fatalf("marshal empty dashboard: %v", err)
	}
}

func TestBuildMarshals(t *testing.T) {
	records := []core.SalaryRecord{
		r("mann", 3, 0, "backend", 600000),
		r("kvinne", 5, 6, "backend", 900000),
		r("mann", 5, 20, "frontend", 2000000),
	}
	d := Build(records, core.DefaultFilter())
	if !d.HasData || len(d.Milestones) != 5 || len(d.Distribution) != 6 || len(d.CareerPaths) != 3 {
		t.Fatalf("dashboard = %+v", d)
	}
	if _, err := json.Marshal(d); err != nil {
		t.Fatalf("dashboard must be JSON encodable: %v", err)
	}
}
