package core

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Dataset is the immutable collection of survey responses loaded at startup.
// All derived views are computed from it plus a FilterSpec.
type Dataset struct {
	records []SalaryRecord
}

// FilterOptions lists the distinct values available for each equality filter.
type FilterOptions struct {
	Genders   []string `json:"genders"`
	Fields    []string `json:"fields"`
	Locations []string `json:"locations"`
	JobTypes  []string `json:"job_types"`
}

// NewDataset copies records into a new Dataset.
func NewDataset(records []SalaryRecord) Dataset {
	out := make([]SalaryRecord, len(records))
	copy(out, records)
	return Dataset{records: out}
}

// DecodeDataset parses a JSON array of records. Invalid records are skipped
// and reported through the returned count.
func DecodeDataset(data []byte) (Dataset, int, error) {
	var raw []SalaryRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return Dataset{}, 0, fmt.Errorf("decode salary records: %w", err)
	}
	valid := raw[:0]
	skipped := 0
	for _, r := range raw {
		if err := r.Validate(); err != nil {
			skipped++
			continue
		}
		valid = append(valid, r)
	}
	return NewDataset(valid), skipped, nil
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of all records in load order.
func (d Dataset) Records() []SalaryRecord {
	out := make([]SalaryRecord, len(d.records))
	copy(out, d.records)
	return out
}

// Filter applies spec to the dataset.
func (d Dataset) Filter(spec FilterSpec) []SalaryRecord {
	return ApplyFilter(d.records, spec)
}

// Options returns sorted distinct values for the filter dropdowns.
func (d Dataset) Options() FilterOptions {
	return FilterOptions{
		Genders:   distinctSorted(d.records, func(r SalaryRecord) string { return r.Gender }),
		Fields:    distinctSorted(d.records, func(r SalaryRecord) string { return r.Field }),
		Locations: distinctSorted(d.records, func(r SalaryRecord) string { return r.Location }),
		JobTypes:  distinctSorted(d.records, func(r SalaryRecord) string { return r.JobType }),
	}
}

func distinctSorted(records []SalaryRecord, key func(SalaryRecord) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		v := key(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
