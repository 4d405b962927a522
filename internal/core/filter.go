package core

import (
	"strconv"
	"strings"
)

const (
	DefaultMinSalary     = 0
	DefaultMaxSalary     = 3_000_000
	DefaultMinExperience = 0
	DefaultMaxExperience = 50
)

// FilterSpec describes the active constraints. Empty strings mean no
// constraint on that dimension; the numeric ranges are always applied and
// their bounds are inclusive.
type FilterSpec struct {
	Gender        string  `json:"gender"`
	Field         string  `json:"field"`
	Location      string  `json:"location"`
	JobType       string  `json:"job_type"`
	MinSalary     float64 `json:"min_salary"`
	MaxSalary     float64 `json:"max_salary"`
	MinExperience int     `json:"min_experience"`
	MaxExperience int     `json:"max_experience"`
}

// DefaultFilter returns the filter a session starts with.
func DefaultFilter() FilterSpec {
	return FilterSpec{
		MinSalary:     DefaultMinSalary,
		MaxSalary:     DefaultMaxSalary,
		MinExperience: DefaultMinExperience,
		MaxExperience: DefaultMaxExperience,
	}
}

// Matches reports whether r satisfies every constraint of f.
func (f FilterSpec) Matches(r SalaryRecord) bool {
	if f.Gender != "" && r.Gender != f.Gender {
		return false
	}
	if f.Field != "" && r.Field != f.Field {
		return false
	}
	if f.Location != "" && r.Location != f.Location {
		return false
	}
	if f.JobType != "" && r.JobType != f.JobType {
		return false
	}
	return r.Salary >= f.MinSalary &&
		r.Salary <= f.MaxSalary &&
		r.YearsExperience >= f.MinExperience &&
		r.YearsExperience <= f.MaxExperience
}

// IsDefault reports whether f equals DefaultFilter.
func (f FilterSpec) IsDefault() bool {
	return f == DefaultFilter()
}

// Key returns a canonical representation of f, suitable as a cache key.
func (f FilterSpec) Key() string {
	var b strings.Builder
	for _, part := range []string{f.Gender, f.Field, f.Location, f.JobType} {
		b.WriteString(strconv.Quote(part))
		b.WriteByte('|')
	}
	b.WriteString(strconv.FormatFloat(f.MinSalary, 'f', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(f.MaxSalary, 'f', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(f.MinExperience))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(f.MaxExperience))
	return b.String()
}

// ApplyFilter returns the records matching spec in their original order.
// The input slice is never modified.
func ApplyFilter(records []SalaryRecord, spec FilterSpec) []SalaryRecord {
	out := make([]SalaryRecord, 0, len(records))
	for _, r := range records {
		if spec.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
