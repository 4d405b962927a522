package table

import "lonnstall/internal/core"

// PageSizes are the accepted rows-per-page values.
var PageSizes = []int{25, 50, 100}

const DefaultPageSize = 25

// NormalizePageSize coerces n to one of PageSizes.
func NormalizePageSize(n int) int {
	for _, s := range PageSizes {
		if n == s {
			return n
		}
	}
	return DefaultPageSize
}

// Page is one window of a sorted record list.
type Page struct {
	Records    []core.SalaryRecord `json:"records"`
	Page       int                 `json:"page"`
	PerPage    int                 `json:"per_page"`
	TotalPages int                 `json:"total_pages"`
	Total      int                 `json:"total"`
	// From and To are 1-based inclusive row numbers; both are 0 when empty.
	From int `json:"from"`
	To   int `json:"to"`
}

func (p Page) HasPrev() bool { return p.Page > 1 }
func (p Page) HasNext() bool { return p.Page < p.TotalPages }
func (p Page) PrevPage() int { return p.Page - 1 }
func (p Page) NextPage() int { return p.Page + 1 }

// Paginate returns the requested page. perPage is normalised and page is
// clamped to [1, TotalPages]; an empty list has a single empty page.
func Paginate(records []core.SalaryRecord, page, perPage int) Page {
	perPage = NormalizePageSize(perPage)
	total := len(records)
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * perPage
	end := min(start+perPage, total)

	p := Page{
		Records:    make([]core.SalaryRecord, 0, end-start),
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		Total:      total,
	}
	p.Records = append(p.Records, records[start:end]...)
	if end > start {
		p.From, p.To = start+1, end
	}
	return p
}
