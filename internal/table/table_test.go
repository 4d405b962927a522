package table

import (
	"reflect"
	"testing"

	"lonnstall/internal/core"
)

func records() []core.SalaryRecord {
	return []core.SalaryRecord{
		{Location: "Oslo", Field: "backend", Salary: 700000, YearsExperience: 3},
		{Location: "Ålesund", Field: "frontend", Salary: 500000, YearsExperience: 1},
		{Location: "bergen", Field: "app", Salary: 700000, YearsExperience: 10, HasBonus: true},
		{Location: "Zürich", Field: "backend", Salary: 900000, YearsExperience: 3},
	}
}

func salaries(rs []core.SalaryRecord) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.Salary
	}
	return out
}

func TestSortNumericDescIsStable(t *testing.T) {
	in := records()
	got := Sort(in, ColumnSalary, Desc)
	want := []float64{900000, 700000, 700000, 500000}
	if !reflect.DeepEqual(salaries(got), want) {
		t.Fatalf("got %v", salaries(got))
	}
	// equal salaries keep input order
	if got[1].Location != "Oslo" || got[2].Location != "bergen" {
		t.Fatalf("sort not stable: %+v", got)
	}
}

func TestSortTextUsesNorwegianCollation(t *testing.T) {
	got := Sort(records(), ColumnLocation, Asc)
	var locs []string
	for _, r := range got {
		locs = append(locs, r.Location)
	}
	want := []string{"bergen", "Oslo", "Zürich", "Ålesund"}
	if !reflect.DeepEqual(locs, want) {
		t.Fatalf("got %v, want %v", locs, want)
	}
}

func TestSortUnknownColumnKeepsOrder(t *testing.T) {
	in := records()
	for _, col := range []string{"", "nope"} {
		got := Sort(in, col, Asc)
		if !reflect.DeepEqual(got, in) {
			t.Fatalf("column %q reordered records", col)
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := records()
	before := records()
	_ = Sort(in, ColumnExperience, Asc)
	if !reflect.DeepEqual(in, before) {
		t.Fatalf("input mutated")
	}
}

func TestSortBool(t *testing.T) {
	got := Sort(records(), ColumnBonus, Desc)
	if !got[0].HasBonus {
		t.Fatalf("records with bonus should come first in desc order")
	}
}

func TestNextDirection(t *testing.T) {
	if NextDirection("lønn", Desc, "lønn") != Asc {
		t.Fatalf("same column must toggle")
	}
	if NextDirection("lønn", Asc, "fag") != Desc {
		t.Fatalf("new column must default to desc")
	}
	if ParseDirection("bogus") != Desc || ParseDirection("asc") != Asc {
		t.Fatalf("ParseDirection mismatch")
	}
}

func TestPaginate(t *testing.T) {
	var rs []core.SalaryRecord
	for i := 0; i < 60; i++ {
		rs = append(rs, core.SalaryRecord{Salary: float64(i + 1)})
	}
	cases := []struct {
		name                string
		page, perPage       int
		wantPage, wantPages int
		wantLen, from, to   int
	}{
		{"first", 1, 25, 1, 3, 25, 1, 25},
		{"last partial", 3, 25, 3, 3, 10, 51, 60},
		{"clamped high", 9, 25, 3, 3, 10, 51, 60},
		{"clamped low", -2, 50, 1, 2, 50, 1, 50},
		{"bad size", 1, 7, 1, 3, 25, 1, 25},
		{"hundred", 1, 100, 1, 1, 60, 1, 60},
	}
	for _, tc := range cases {
		p := Paginate(rs, tc.page, tc.perPage)
		if p.Page != tc.wantPage || p.TotalPages != tc.wantPages || len(p.Records) != tc.wantLen || p.From != tc.from || p.To != tc.to {
			t.Fatalf("%s: got page=%d pages=%d len=%d from=%d to=%d", tc.name, p.Page, p.TotalPages, len(p.Records), p.From, p.To)
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 4, 25)
	if p.Page != 1 || p.TotalPages != 1 || len(p.Records) != 0 || p.From != 0 || p.HasNext() || p.HasPrev() {
		t.Fatalf("empty page = %+v", p)
	}
}

func TestSortTextPutsNorwegianLettersAfterZ(t *testing.T) {
	in := []core.SalaryRecord{
		{Location: "Ørsta"}, {Location: "Ålesund"}, {Location: "Zürich"},
		{Location: "Ærøy"}, {Location: "oslo"}, {Location: "Arendal"},
	}
	got := Sort(in, ColumnLocation, Asc)
	var locs []string
	for _, r := range got {
		locs = append(locs, r.Location)
	}
	want := []string{"Arendal", "oslo", "Zürich", "Ærøy", "Ørsta", "Ålesund"}
	if !reflect.DeepEqual(locs, want) {
		t.Fatalf("got %v, want %v", locs, want)
	}
}
