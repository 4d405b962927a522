package insights

import (
	"sort"

	"lonnstall/internal/core"
	"lonnstall/internal/stats"
)

// Milestone is one step of the five-step career ladder. The milestone ranges
// deliberately differ from stats.ExperienceBands.
type Milestone struct {
	Years       int     `json:"years"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	MinYears    int     `json:"min_years"`
	MaxYears    int     `json:"max_years"`
	HasData     bool    `json:"has_data"`
	Mean        float64 `json:"mean"`
	Count       int     `json:"count"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
}

const noMilestoneData = "Ingen tilgjengelig data for denne kategorien."

// unbounded marks an open upper range.
const unbounded = -1

var milestoneDefs = []Milestone{
	{Years: 0, MinYears: 0, MaxYears: 0, Title: "Nyutdannet / Første jobb",
		Description: "Starter karrieren med grunnleggende ferdigheter. Fokus på læring og tilpasning."},
	{Years: 2, MinYears: 1, MaxYears: 3, Title: "Junior utvikler",
		Description: "Har fått grunnleggende erfaring og begynner å ta på seg mer ansvar."},
	{Years: 5, MinYears: 4, MaxYears: 7, Title: "Senior utvikler",
		Description: "Selvstendig utvikler med solid erfaring. Kan mentorere yngre kolleger."},
	{Years: 10, MinYears: 8, MaxYears: 12, Title: "Lead / Arkitekt",
		Description: "Leder tekniske prosjekter og tar arkitektur-beslutninger."},
	{Years: 15, MinYears: 13, MaxYears: unbounded, Title: "Principal / Expert",
		Description: "Ekspert på området med dyp kunnskap og strategisk oversikt."},
}

func inRange(v, lo, hi int) bool {
	return v >= lo && (hi == unbounded || v <= hi)
}

// CareerMilestones returns all five milestones. Milestones without records
// have HasData false, zero statistics and a placeholder description.
func CareerMilestones(records []core.SalaryRecord) []Milestone {
	out := make([]Milestone, 0, len(milestoneDefs))
	for _, def := range milestoneDefs {
		m := def
		var salaries []float64
		for _, r := range records {
			if inRange(r.YearsExperience, def.MinYears, def.MaxYears) {
				salaries = append(salaries, r.Salary)
			}
		}
		if s, ok := stats.Summarize(salaries); ok {
			m.HasData = true
			m.Mean, m.Count, m.Min, m.Max = s.Mean, s.Count, s.Min, s.Max
		} else {
			m.Description = noMilestoneData
		}
		out = append(out, m)
	}
	return out
}

// EducationLevel is the salary profile of one education bracket.
type EducationLevel struct {
	Level       int     `json:"level"`
	Description string  `json:"description"`
	Count       int     `json:"count"`
	Mean        float64 `json:"mean"`
	EntryMean   float64 `json:"entry_mean"`
	SeniorMean  float64 `json:"senior_mean"`
	Growth      int     `json:"growth"`
}

var educationDefs = []struct {
	level       int
	description string
	min, max    int
}{
	{0, "Selvlært / Bootcamp", 0, 1},
	{3, "Bachelor (3 år)", 2, 4},
	{5, "Master (5 år)", 5, 6},
	{8, "PhD / Høyere grad", 7, unbounded},
}

// EducationROI compares entry-level and experienced pay per education
// bracket. Brackets without records are omitted; Growth is 0 when either
// cohort is empty.
func EducationROI(records []core.SalaryRecord) []EducationLevel {
	out := make([]EducationLevel, 0, len(educationDefs))
	for _, def := range educationDefs {
		var all, entry, senior []float64
		for _, r := range records {
			if !inRange(r.YearsEducation, def.min, def.max) {
				continue
			}
			all = append(all, r.Salary)
			if r.IsEntryLevel() {
				entry = append(entry, r.Salary)
			}
			if r.IsExperienced() {
				senior = append(senior, r.Salary)
			}
		}
		if len(all) == 0 {
			continue
		}
		lvl := EducationLevel{
			Level:       def.level,
			Description: def.description,
			Count:       len(all),
			Mean:        stats.Mean(all),
			EntryMean:   stats.Mean(entry),
			SeniorMean:  stats.Mean(senior),
		}
		lvl.Growth = stats.Growth(lvl.EntryMean, lvl.SeniorMean)
		out = append(out, lvl)
	}
	return out
}

const (
	DifficultyLow    = "Lav"
	DifficultyMedium = "Middels"
	DifficultyHigh   = "Høy"

	minBeginnerEntries = 3
)

var fieldDifficulty = map[string]string{
	"frontend":                    DifficultyLow,
	"fullstack":                   DifficultyMedium,
	"backend":                     DifficultyMedium,
	"app":                         DifficultyLow,
	"UX / design":                 DifficultyLow,
	"data science":                DifficultyHigh,
	"AI / maskinlæring":           DifficultyHigh,
	"sikkerhet":                   DifficultyHigh,
	"devops / drift":              DifficultyMedium,
	"embedded / IOT / maskinvare": DifficultyHigh,
}

// Difficulty returns the entry barrier of a field, "Middels" when unknown.
func Difficulty(field string) string {
	if d, ok := fieldDifficulty[field]; ok {
		return d
	}
	return DifficultyMedium
}

// BeginnerField describes how accessible and well paid a field is for
// entry-level candidates.
type BeginnerField struct {
	Field      string  `json:"field"`
	EntryMean  float64 `json:"entry_mean"`
	EntryCount int     `json:"entry_count"`
	Difficulty string  `json:"difficulty"`
	Growth     int     `json:"growth"`
	// Share is EntryMean relative to the best-paid beginner field, 0..100.
	Share int `json:"share"`
}

// BeginnerFields lists fields with at least three entry-level records,
// ordered by entry-level mean descending.
func BeginnerFields(records []core.SalaryRecord) []BeginnerField {
	var entryRecords, seniorRecords []core.SalaryRecord
	for _, r := range records {
		if r.IsEntryLevel() {
			entryRecords = append(entryRecords, r)
		}
		if r.IsExperienced() {
			seniorRecords = append(seniorRecords, r)
		}
	}
	byField := func(r core.SalaryRecord) string { return r.Field }
	senior := stats.GroupBy(seniorRecords, byField)

	// Ties on entry mean keep the order fields first appear among entry-level records.
	out := make([]BeginnerField, 0)
	stats.GroupBy(entryRecords, byField).Each(func(field string, rs []core.SalaryRecord) {
		if len(rs) < minBeginnerEntries {
			return
		}
		entryMean := stats.Mean(stats.Salaries(rs))
		sr, _ := senior.Get(field)
		out = append(out, BeginnerField{
			Field:      field,
			EntryMean:  entryMean,
			EntryCount: len(rs),
			Difficulty: Difficulty(field),
			Growth:     stats.Growth(entryMean, stats.Mean(stats.Salaries(sr))),
		})
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].EntryMean > out[j].EntryMean })
	if len(out) > 0 {
		top := out[0].EntryMean
		for i := range out {
			out[i].Share = shareOf(out[i].EntryMean, top)
		}
	}
	return out
}

// shareOf returns v as a percentage of top, capped at 100.
func shareOf(v, top float64) int {
	if top <= 0 {
		return 0
	}
	p := int(stats.Round(v / top * 100))
	if p > 100 {
		return 100
	}
	return p
}

// PathStage is one step on a reference career path.
type PathStage struct {
	Experience  string  `json:"experience"`
	Title       string  `json:"title"`
	Salary      float64 `json:"salary"`
	Description string  `json:"description"`
}

// CareerPath is a static, illustrative progression with advice.
type CareerPath struct {
	Title  string      `json:"title"`
	Stages []PathStage `json:"stages"`
	Tips   []string    `json:"tips"`
}

// CareerPaths returns the reference career paths. They do not depend on the
// dataset.
func CareerPaths() []CareerPath {
	return []CareerPath{
		{
			Title: "Frontend-utvikler til Full-stack",
			Stages: []PathStage{
				{"0-1 år", "Junior Frontend", 650000, "HTML, CSS, JavaScript"},
				{"2-3 år", "Frontend Developer", 750000, "React/Vue, responsiv design"},
				{"4-6 år", "Senior Frontend", 900000, "Arkitektur, mentoring"},
				{"7+ år", "Full-stack Lead", 1200000, "Full-stack, teamledelse"},
			},
			Tips: []string{
				"Start med grunnleggende HTML, CSS og JavaScript",
				"Lær et moderne framework som React eller Vue",
				"Utvikle forståelse for UX/UI-prinsipper",
				"Gradvis lær backend-teknologier som Node.js",
			},
		},
		{
			Title: "Backend-utvikler til Arkitekt",
			Stages: []PathStage{
				{"0-1 år", "Junior Backend", 680000, "API-utvikling, databaser"},
				{"2-3 år", "Backend Developer", 800000, "Microservices, caching"},
				{"4-6 år", "Senior Backend", 950000, "Systemdesign, skalering"},
				{"7+ år", "Solution Architect", 1300000, "Arkitektur, strategiske beslutninger"},
			},
			Tips: []string{
				"Mestre minst ett backend-språk godt (Java, Python, C#, etc.)",
				"Forstå databaser og datamodellering",
				"Lær om cloud-teknologier (AWS, Azure, GCP)",
				"Utvikle ferdigheter innen systemarkitektur og skalering",
			},
		},
		{
			Title: "Fra Student til Data Scientist",
			Stages: []PathStage{
				{"0-1 år", "Data Analyst", 620000, "SQL, Excel, grunnleggende analyse"},
				{"2-3 år", "Junior Data Scientist", 750000, "Python, machine learning"},
				{"4-6 år", "Data Scientist", 950000, "Deep learning, deployment"},
				{"7+ år", "Principal Data Scientist", 1400000, "Strategi, research"},
			},
			Tips: []string{
				"Lær Python og R for dataanalyse",
				"Forstå statistikk og machine learning-algoritmer",
				"Bygg et portfolio med reelle prosjekter",
				"Spesialiser deg innen et domene (finance, healthcare, etc.)",
			},
		},
	}
}
