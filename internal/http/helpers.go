package http

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"lonnstall/internal/core"
	"lonnstall/internal/format"
	"lonnstall/internal/services"
	"lonnstall/internal/stats"
	"lonnstall/internal/table"
)

// barWidth scales value against max into [0,100]; visible values are at least 2.
func barWidth(value, max float64) int {
	if max <= 0 || value <= 0 {
		return 0
	}
	w := int(stats.Round(value / max * 100))
	if w < 2 {
		w = 2
	}
	if w > 100 {
		w = 100
	}
	return w
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"kr":       format.Kroner,
		"num":      func(n int) string { return format.Number(int64(n)) },
		"signed":   format.Signed,
		"width":    barWidth,
		"yesno":    format.YesNo,
		"ago":      func(t time.Time) string { return humanize.Time(t) },
		"selected": func(a, b string) bool { return a == b },
	}
}

// sanitizeInput removes control characters. Everything else is kept so the
// value still matches dataset entries exactly.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return -1
		}
		return r
	}, s)
}

var columnLabels = map[string]string{
	table.ColumnGender:     "Kjønn",
	table.ColumnEducation:  "Utdanning",
	table.ColumnExperience: "Erfaring",
	table.ColumnLocation:   "Arbeidssted",
	table.ColumnJobType:    "Jobbtype",
	table.ColumnField:      "Fagområde",
	table.ColumnSalary:     "Lønn",
	table.ColumnBonus:      "Bonus",
	table.ColumnCommission: "Provisjon",
}

// columnHeader is one clickable table heading.
type columnHeader struct {
	Label string
	Href  string
	Arrow string
}

// tableView is what the table partial renders.
type tableView struct {
	services.RecordsPage
	Headers   []columnHeader
	PageSizes []int
	PrevHref  string
	NextHref  string
	SizeHref  string
}

// tableHref builds a /ui/table link for the given filter and table state.
func tableHref(f core.FilterSpec, sort string, dir table.Direction, page, perPage int) string {
	q := EncodeFilterSpec(f)
	if sort != "" {
		q.Set(ParamSort, sort)
		q.Set(ParamDir, string(dir))
	}
	if page > 1 {
		q.Set(ParamPage, fmt.Sprint(page))
	}
	if perPage != table.DefaultPageSize {
		q.Set(ParamPerPage, fmt.Sprint(perPage))
	}
	if len(q) == 0 {
		return "/ui/table"
	}
	return "/ui/table?" + q.Encode()
}

func newTableView(p services.RecordsPage) tableView {
	v := tableView{RecordsPage: p, PageSizes: table.PageSizes}
	for _, col := range table.Columns {
		h := columnHeader{Label: columnLabels[col]}
		next := table.NextDirection(p.Sort, p.Dir, col)
		// a new sort starts over at page one
		h.Href = tableHref(p.Filter, col, next, 1, p.PerPage)
		if col == p.Sort {
			h.Arrow = "↓"
			if p.Dir == table.Asc {
				h.Arrow = "↑"
			}
		}
		v.Headers = append(v.Headers, h)
	}
	if p.HasPrev() {
		v.PrevHref = tableHref(p.Filter, p.Sort, p.Dir, p.PrevPage(), p.PerPage)
	}
	if p.HasNext() {
		v.NextHref = tableHref(p.Filter, p.Sort, p.Dir, p.NextPage(), p.PerPage)
	}
	// per_page is appended by the select element
	q := EncodeFilterSpec(p.Filter)
	if p.Sort != "" {
		q.Set(ParamSort, p.Sort)
		q.Set(ParamDir, string(p.Dir))
	}
	v.SizeHref = "/ui/table"
	if len(q) > 0 {
		v.SizeHref += "?" + q.Encode()
	}
	return v
}
