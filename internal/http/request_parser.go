// Package http provides HTTP server and handler implementations.
//
// This file turns query strings into filters and table parameters. Bad input
// never fails a request: each value falls back to its default on its own.

package http

import (
	"net/url"
	"strconv"
	"strings"

	"lonnstall/internal/core"
	"lonnstall/internal/table"
)

// Filter query parameter names.
const (
	ParamGender        = "gender"
	ParamField         = "field"
	ParamLocation      = "location"
	ParamJobType       = "job_type"
	ParamMinSalary     = "min_salary"
	ParamMaxSalary     = "max_salary"
	ParamMinExperience = "min_experience"
	ParamMaxExperience = "max_experience"

	ParamSort    = "sort"
	ParamDir     = "dir"
	ParamPage    = "page"
	ParamPerPage = "per_page"
)

// TableParams are the sorting and paging parameters of the records table.
type TableParams struct {
	Sort    string
	Dir     table.Direction
	Page    int
	PerPage int
}

// ParseFilterSpec reads a FilterSpec from query values. Missing or unparsable
// numbers keep their defaults; equality filters are taken verbatim after
// trimming.
func ParseFilterSpec(query url.Values) core.FilterSpec {
	f := core.DefaultFilter()
	f.Gender = sanitizeInput(query.Get(ParamGender))
	f.Field = sanitizeInput(query.Get(ParamField))
	f.Location = sanitizeInput(query.Get(ParamLocation))
	f.JobType = sanitizeInput(query.Get(ParamJobType))

	f.MinSalary = parseFloat(query.Get(ParamMinSalary), f.MinSalary)
	f.MaxSalary = parseFloat(query.Get(ParamMaxSalary), f.MaxSalary)
	f.MinExperience = parseInt(query.Get(ParamMinExperience), f.MinExperience)
	f.MaxExperience = parseInt(query.Get(ParamMaxExperience), f.MaxExperience)
	return f
}

// EncodeFilterSpec is the inverse of ParseFilterSpec. Default values are
// left out so links stay short.
func EncodeFilterSpec(f core.FilterSpec) url.Values {
	d := core.DefaultFilter()
	v := url.Values{}
	setIf := func(key, value string, skip bool) {
		if !skip {
			v.Set(key, value)
		}
	}
	setIf(ParamGender, f.Gender, f.Gender == "")
	setIf(ParamField, f.Field, f.Field == "")
	setIf(ParamLocation, f.Location, f.Location == "")
	setIf(ParamJobType, f.JobType, f.JobType == "")
	setIf(ParamMinSalary, strconv.FormatFloat(f.MinSalary, 'f', -1, 64), f.MinSalary == d.MinSalary)
	setIf(ParamMaxSalary, strconv.FormatFloat(f.MaxSalary, 'f', -1, 64), f.MaxSalary == d.MaxSalary)
	setIf(ParamMinExperience, strconv.Itoa(f.MinExperience), f.MinExperience == d.MinExperience)
	setIf(ParamMaxExperience, strconv.Itoa(f.MaxExperience), f.MaxExperience == d.MaxExperience)
	return v
}

// ParseTableParams reads sorting and paging parameters. Unknown columns mean
// unsorted; page sizes outside table.PageSizes become the default.
func ParseTableParams(query url.Values) TableParams {
	p := TableParams{
		Sort:    strings.TrimSpace(query.Get(ParamSort)),
		Dir:     table.ParseDirection(strings.TrimSpace(query.Get(ParamDir))),
		Page:    parseInt(query.Get(ParamPage), 1),
		PerPage: table.NormalizePageSize(parseInt(query.Get(ParamPerPage), table.DefaultPageSize)),
	}
	if !table.IsColumn(p.Sort) {
		p.Sort = ""
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

func parseFloat(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != v { // NaN
		return def
	}
	return v
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
