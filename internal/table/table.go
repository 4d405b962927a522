// Package table sorts and pages survey records for the records table.
package table

import (
	"sort"
	"strconv"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"lonnstall/internal/core"
)

// Column names accepted by Sort. They match the upstream JSON keys so the
// table header and the API share one vocabulary.
const (
	ColumnGender     = "kjønn"
	ColumnEducation  = "års utdanning"
	ColumnExperience = "års erfaring"
	ColumnLocation   = "arbeidssted"
	ColumnJobType    = "jobbtype"
	ColumnField      = "fag"
	ColumnSalary     = "lønn"
	ColumnBonus      = "inkludert bonus?"
	ColumnCommission = "inkludert provisjon?"
)

// Columns lists every sortable column in display order.
var Columns = []string{
	ColumnGender, ColumnEducation, ColumnExperience, ColumnLocation,
	ColumnJobType, ColumnField, ColumnSalary, ColumnBonus, ColumnCommission,
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultDirection is used when a new column is selected.
const DefaultDirection = Desc

// ParseDirection maps anything other than "asc" to the default direction.
func ParseDirection(s string) Direction {
	if Direction(s) == Asc {
		return Asc
	}
	return DefaultDirection
}

// Toggle flips the direction.
func (d Direction) Toggle() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// NextDirection returns the direction to use when column is clicked while
// the table is sorted by current in direction dir.
func NextDirection(current string, dir Direction, column string) Direction {
	if current == column {
		return dir.Toggle()
	}
	return DefaultDirection
}

// IsColumn reports whether name is a sortable column.
func IsColumn(name string) bool {
	for _, c := range Columns {
		if c == name {
			return true
		}
	}
	return false
}

var collatorMu sync.Mutex

// x/text has no Norwegian tailoring; Danish shares the alphabet order.
var collator = collate.New(language.Danish, collate.IgnoreCase)

// compareText orders strings case-insensitively in Norwegian alphabet order,
// so "æ", "ø" and "å" sort after "z".
func compareText(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

func compareNumber(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compare orders a and b by column. ok is false for an unknown column.
func compare(a, b core.SalaryRecord, column string) (int, bool) {
	switch column {
	case ColumnGender:
		return compareText(a.Gender, b.Gender), true
	case ColumnLocation:
		return compareText(a.Location, b.Location), true
	case ColumnJobType:
		return compareText(a.JobType, b.JobType), true
	case ColumnField:
		return compareText(a.Field, b.Field), true
	case ColumnEducation:
		return compareNumber(float64(a.YearsEducation), float64(b.YearsEducation)), true
	case ColumnExperience:
		return compareNumber(float64(a.YearsExperience), float64(b.YearsExperience)), true
	case ColumnSalary:
		return compareNumber(a.Salary, b.Salary), true
	case ColumnBonus:
		return compareText(strconv.FormatBool(a.HasBonus), strconv.FormatBool(b.HasBonus)), true
	case ColumnCommission:
		return compareText(strconv.FormatBool(a.HasCommission), strconv.FormatBool(b.HasCommission)), true
	}
	return 0, false
}

// Sort returns a stably sorted copy of records. An unknown or empty column
// returns the records in their original order.
func Sort(records []core.SalaryRecord, column string, dir Direction) []core.SalaryRecord {
	out := make([]core.SalaryRecord, len(records))
	copy(out, records)
	if !IsColumn(column) {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		c, _ := compare(out[i], out[j], column)
		if dir == Asc {
			return c < 0
		}
		return c > 0
	})
	return out
}
