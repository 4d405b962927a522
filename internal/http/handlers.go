package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lonnstall/internal/core"
	"lonnstall/internal/insights"
	"lonnstall/internal/log"
	"lonnstall/internal/services"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).String(),
	}).Write(w)
}

// handleReady reports whether templates are parsed and the dataset is loaded.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if err := s.dashboard.Ready(); err != nil {
		checks["dataset"] = fmt.Sprintf("failed: %v", err)
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		info := s.dashboard.Info()
		checks["dataset"] = map[string]any{
			"status":    "ok",
			"source":    info.Source,
			"records":   info.Records,
			"skipped":   info.Skipped,
			"loaded_at": info.LoadedAt.Format(time.RFC3339),
		}
	}

	cs := s.dashboard.CacheStats()
	checks["cache"] = map[string]any{
		"entries": cs.Size,
		"status":  "ok",
	}
	checks["rate_limiter"] = map[string]any{
		"active_clients": s.rateLimiter.ActiveClients(),
		"status":         "ok",
	}

	NewResponse().Status(httpStatus).JSON(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}).Write(w)
}

// handleMetrics writes counters in the Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	securityMetrics := s.securityDetector.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	traceMetrics := s.traceMiddleware.GetMetrics()
	cacheStats := s.dashboard.CacheStats()
	info := s.dashboard.Info()

	var b bytes.Buffer
	metric := func(name, help, kind string, value any) {
		fmt.Fprintf(&b, "# HELP %s %s\n", name, help)
		fmt.Fprintf(&b, "# TYPE %s %s\n", name, kind)
		fmt.Fprintf(&b, "%s %v\n\n", name, value)
	}

	metric("http_requests_total", "Total number of HTTP requests", "counter", traceMetrics.TotalRequests)
	metric("http_server_errors_total", "Responses with a 5xx status", "counter", traceMetrics.ServerErrors)
	metric("proxy_requests_total", "Requests to /api/salaries", "counter", s.appMetrics.proxyRequests.Load())
	metric("proxy_failures_total", "Failed upstream fetches", "counter", s.appMetrics.proxyFailures.Load())
	metric("proxy_bytes_total", "Bytes relayed from the upstream", "counter", s.appMetrics.proxyBytes.Load())
	metric("dataset_records", "Records in the loaded dataset", "gauge", info.Records)
	metric("dataset_skipped_records", "Invalid records dropped at load", "gauge", info.Skipped)
	metric("cache_hits_total", "Dashboard cache hits", "counter", cacheStats.Hits)
	metric("cache_misses_total", "Dashboard cache misses", "counter", cacheStats.Misses)
	metric("cache_entries", "Current dashboard cache entries", "gauge", cacheStats.Size)
	metric("rate_limit_hits_total", "Total rate limit hits", "counter", rateLimitMetrics.TotalHits)
	metric("active_rate_limit_clients", "Currently tracked rate limit clients", "gauge", rateLimitMetrics.ClientCount)
	metric("suspicious_requests_total", "Total suspicious requests detected", "counter", securityMetrics.SuspiciousRequests)
	metric("uptime_seconds", "Application uptime in seconds", "gauge", fmt.Sprintf("%.0f", time.Since(s.appMetrics.uptime).Seconds()))

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Bytes())
}

// dashboardView is the data behind dashboard.html.
type dashboardView struct {
	insights.Dashboard
	Options core.FilterOptions
	Table   tableView
	Info    services.DatasetInfo
	Error   string

	// Bar chart maxima
	MaxGapMean       float64
	MaxEducationMean float64
	MaxTrendMean     float64
}

func newDashboardView(d insights.Dashboard) dashboardView {
	v := dashboardView{Dashboard: d}
	for _, g := range d.GenderPayGap {
		v.MaxGapMean = max(v.MaxGapMean, g.MaleMean, g.FemaleMean)
	}
	for _, e := range d.EducationROI {
		v.MaxEducationMean = max(v.MaxEducationMean, e.Mean)
	}
	for _, t := range d.SalaryTrend {
		v.MaxTrendMean = max(v.MaxTrendMean, t.Mean)
	}
	return v
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded",
			log.FieldPath, r.URL.Path,
			log.FieldComponent, log.ComponentTemplate)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	filter := ParseFilterSpec(q)
	tp := ParseTableParams(q)

	d, err := s.dashboard.Dashboard(r.Context(), filter)
	if err != nil {
		s.logFailure(r, "Dashboard unavailable", err, log.ComponentDashboard, log.OpBuild)
		view := dashboardView{Dashboard: insights.Dashboard{Filter: filter}, Error: MsgFetchFailed}
		s.render(w, r, http.StatusInternalServerError, "dashboard.html", view)
		return
	}

	view := newDashboardView(d)
	view.Info = s.dashboard.Info()
	if view.Options, err = s.dashboard.Options(); err != nil {
		s.logger.WarnContext(r.Context(), "Filter options unavailable", log.FieldError, err.Error())
	}
	page, err := s.dashboard.Records(filter, tp.Sort, tp.Dir, tp.Page, tp.PerPage)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Records unavailable", log.FieldError, err.Error())
	}
	view.Table = newTableView(page)

	s.render(w, r, http.StatusOK, "dashboard.html", view)
}

// handleTable renders the records table partial swapped in by htmx.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		HTMLError(http.StatusInternalServerError, "templates not loaded").Write(w)
		return
	}
	q := r.URL.Query()
	tp := ParseTableParams(q)
	page, err := s.dashboard.Records(ParseFilterSpec(q), tp.Sort, tp.Dir, tp.Page, tp.PerPage)
	if err != nil {
		s.logFailure(r, "Records unavailable", err, log.ComponentDashboard, log.OpFilter)
		HTMLError(http.StatusInternalServerError, "Error: "+MsgFetchFailed).Write(w)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "table", newTableView(page)); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution error",
			log.FieldError, err.Error(),
			"template", "table")
		HTMLError(http.StatusInternalServerError, "Error rendering table").Write(w)
		return
	}
	NewResponse().
		TriggerTablePage(page.Page.Page, page.TotalPages).
		BodyHTML(buf.String()).
		Write(w)
}

// logFailure logs through the request-scoped logger so the line carries the
// request id.
func (s *Server) logFailure(r *http.Request, msg string, err error, component, op string) {
	log.NewStructuredLogger(log.FromContext(r.Context())).LogError(r.Context(), msg, err, component, op, nil)
}

// render executes name into a buffer before writing status and body.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed",
			log.FieldError, err.Error(),
			log.FieldOperation, log.OpRender,
			"template", name)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	NewResponse().Status(status).BodyHTML(buf.String()).Write(w)
}

// writeJSON encodes v without HTML escaping.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		JSONError(http.StatusInternalServerError, "internal error").Write(w)
		return
	}
	NewResponse().
		Status(status).
		Header("Content-Type", "application/json").
		Body(bytes.TrimRight(buf.Bytes(), "\n")).
		Write(w)
}
