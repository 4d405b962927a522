package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"lonnstall/internal/cache"
	"lonnstall/internal/core"
	"lonnstall/internal/insights"
	"lonnstall/internal/log"
	"lonnstall/internal/middleware/ratelimit"
	"lonnstall/internal/middleware/security"
	"lonnstall/internal/middleware/trace"
	"lonnstall/internal/services"
	"lonnstall/internal/source"
	"lonnstall/internal/table"
	appweb "lonnstall/web"
)

// DashboardProvider is the read side the handlers need from the dataset.
type DashboardProvider interface {
	Dashboard(ctx context.Context, filter core.FilterSpec) (insights.Dashboard, error)
	Records(filter core.FilterSpec, column string, dir table.Direction, page, perPage int) (services.RecordsPage, error)
	Options() (core.FilterOptions, error)
	Ready() error
	Info() services.DatasetInfo
	CacheStats() cache.Stats
}

// Config holds server settings that are not dependencies.
type Config struct {
	Addr               string
	RateLimitPerMinute int
	Logger             *log.Logger
}

type Server struct {
	http.Server
	templates *template.Template
	dashboard DashboardProvider
	upstream  source.RawFetcher
	logger    *log.Logger

	rateLimiter      *ratelimit.Limiter
	securityDetector *security.Detector
	traceMiddleware  *trace.Middleware
	appMetrics       *appMetrics

	shutdownOnce sync.Once
}

type appMetrics struct {
	uptime        time.Time
	proxyRequests atomic.Int64
	proxyFailures atomic.Int64
	proxyBytes    atomic.Int64
}

// NewServer configures routes, middleware and templates. upstream serves
// /api/salaries; dashboard serves every other data route.
func NewServer(cfg Config, dashboard DashboardProvider, upstream source.RawFetcher) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	detector := security.NewDetector(logger)
	s := &Server{
		dashboard:        dashboard,
		upstream:         upstream,
		logger:           logger,
		securityDetector: detector,
		traceMiddleware:  trace.NewMiddleware(logger, detector.ExtractClientIP),
		rateLimiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimitPerMinute}),
		appMetrics:       &appMetrics{uptime: time.Now()},
	}

	t, err := template.New("lonnstall").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Error("Failed parsing templates", log.FieldError, err.Error())
	} else {
		s.templates = t
	}

	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err.Error())
	}

	limited := s.rateLimiter.Middleware(detector.ExtractClientIP, s.onRateLimited)

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ui/table", s.handleTable)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.Handle("GET /api/salaries", limited(http.HandlerFunc(s.handleSalaries)))
	mux.Handle("GET /api/dashboard", limited(http.HandlerFunc(s.handleDashboardAPI)))
	mux.Handle("GET /api/records", limited(http.HandlerFunc(s.handleRecordsAPI)))
	mux.Handle("GET /api/filters", limited(http.HandlerFunc(s.handleFiltersAPI)))

	var handler http.Handler = mux
	handler = detector.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = log.Middleware(logger, trace.RequestIDFromRequest)(handler)
	handler = s.traceMiddleware.Middleware(handler)

	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.securityDetector.ExtractClientIP(r),
		log.FieldPath, r.URL.Path)
	JSONError(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.").Write(w)
}

// Shutdown stops background goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
