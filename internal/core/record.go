package core

import (
	"errors"
)

const (
	GenderMale   = "mann"
	GenderFemale = "kvinne"
)

// SalaryRecord is one survey response. Records are never mutated after load.
type SalaryRecord struct {
	Gender          string  `json:"kjønn"`
	YearsEducation  int     `json:"års utdanning"`
	YearsExperience int     `json:"års erfaring"`
	Location        string  `json:"arbeidssted"`
	JobType         string  `json:"jobbtype"`
	Field           string  `json:"fag"`
	Salary          float64 `json:"lønn"`
	HasBonus        bool    `json:"inkludert bonus?"`
	HasCommission   bool    `json:"inkludert provisjon?"`
}

var (
	ErrInvalidSalary      = errors.New("salary must be greater than zero")
	ErrNegativeEducation  = errors.New("years of education cannot be negative")
	ErrNegativeExperience = errors.New("years of experience cannot be negative")
)

func (r SalaryRecord) Validate() error {
	if r.Salary <= 0 {
		return ErrInvalidSalary
	}
	if r.YearsEducation < 0 {
		return ErrNegativeEducation
	}
	if r.YearsExperience < 0 {
		return ErrNegativeExperience
	}
	return nil
}

// IsEntryLevel reports whether the respondent has at most two years of experience.
func (r SalaryRecord) IsEntryLevel() bool {
	return r.YearsExperience <= 2
}

// IsFreshGraduate reports whether the respondent has no work experience.
func (r SalaryRecord) IsFreshGraduate() bool {
	return r.YearsExperience == 0
}

// IsExperienced reports whether the respondent has five or more years of experience.
func (r SalaryRecord) IsExperienced() bool {
	return r.YearsExperience >= 5
}

// HasVariablePay reports whether the salary includes bonus or commission.
func (r SalaryRecord) HasVariablePay() bool {
	return r.HasBonus || r.HasCommission
}
