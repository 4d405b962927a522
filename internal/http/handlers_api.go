package http

import (
	"net/http"

	"lonnstall/internal/core"
	"lonnstall/internal/log"
)

// handleSalaries relays the upstream survey file unchanged. Every failure,
// whether transport, status or payload, gets the same 500 body.
func (s *Server) handleSalaries(w http.ResponseWriter, r *http.Request) {
	s.appMetrics.proxyRequests.Add(1)

	body, err := s.upstream.FetchRaw(r.Context())
	if err != nil {
		s.appMetrics.proxyFailures.Add(1)
		s.logFailure(r, "Upstream fetch failed", err, log.ComponentProxy, log.OpFetch)
		FetchFailedError().Write(w)
		return
	}

	s.appMetrics.proxyBytes.Add(int64(len(body)))
	s.logger.DebugContext(r.Context(), "Upstream fetch succeeded",
		log.FieldComponent, log.ComponentProxy,
		log.FieldBytes, len(body))
	NewResponse().
		Header("Content-Type", "application/json").
		Body(body).
		Write(w)
}

// handleDashboardAPI returns every insight view for the query's filter.
func (s *Server) handleDashboardAPI(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard.Dashboard(r.Context(), ParseFilterSpec(r.URL.Query()))
	if err != nil {
		s.logFailure(r, "Dashboard unavailable", err, log.ComponentDashboard, log.OpBuild)
		FetchFailedError().Write(w)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type recordsResponse struct {
	Records    []core.SalaryRecord `json:"records"`
	Page       int                 `json:"page"`
	PerPage    int                 `json:"per_page"`
	TotalPages int                 `json:"total_pages"`
	Matched    int                 `json:"matched"`
	TotalCount int                 `json:"total_count"`
	Sort       string              `json:"sort,omitempty"`
	Dir        string              `json:"dir,omitempty"`
	Filter     core.FilterSpec     `json:"filter"`
}

// handleRecordsAPI returns one sorted page of the filtered records.
func (s *Server) handleRecordsAPI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tp := ParseTableParams(q)
	p, err := s.dashboard.Records(ParseFilterSpec(q), tp.Sort, tp.Dir, tp.Page, tp.PerPage)
	if err != nil {
		s.logFailure(r, "Records unavailable", err, log.ComponentDashboard, log.OpFilter)
		FetchFailedError().Write(w)
		return
	}
	resp := recordsResponse{
		Records:    p.Records,
		Page:       p.Page.Page,
		PerPage:    p.PerPage,
		TotalPages: p.TotalPages,
		Matched:    p.Total,
		TotalCount: p.TotalCount,
		Sort:       p.Sort,
		Filter:     p.Filter,
	}
	if p.Sort != "" {
		resp.Dir = string(p.Dir)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleFiltersAPI returns the dropdown values and the default filter.
func (s *Server) handleFiltersAPI(w http.ResponseWriter, r *http.Request) {
	opts, err := s.dashboard.Options()
	if err != nil {
		s.logFailure(r, "Filter options unavailable", err, log.ComponentDashboard, log.OpLoad)
		FetchFailedError().Write(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"options": opts,
		"default": core.DefaultFilter(),
	})
}
