package http

import (
	"bytes"
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"accounting/internal/config"
	"accounting/internal/core"
	"accounting/internal/editor"
	"accounting/internal/log"
	"accounting/internal/metrics"
	"accounting/internal/middleware/ratelimit"
	"accounting/internal/middleware/security"
	"accounting/internal/middleware/trace"
	appweb "accounting/web"
)

// Ledger is the read and delete surface of the transaction store the views need.
// Creation and updates go through the editor.
type Ledger interface {
	List() []core.Transaction
	Get(id int64) (core.Transaction, bool)
	Remove(id int64) bool
	Totals() core.Totals
}

// Dependencies are the collaborators a Server is built from.
type Dependencies struct {
	Ledger    Ledger
	Editor    *editor.Dialog
	Logger    *log.Logger
	Collector metrics.Collector

	// MetricsHandler serves /metrics; nil leaves the route unregistered.
	MetricsHandler http.Handler

	// Templates and Static default to the embedded web assets.
	Templates fs.FS
	Static    fs.FS
}

// Server is the dashboard HTTP server.
type Server struct {
	http.Server
	templates *template.Template
	ledger    Ledger
	editor    *editor.Dialog
	logger    *log.Logger
	events    *log.StructuredLogger
	collector metrics.Collector
	limiter   *ratelimit.Limiter
	detector  *security.Detector
	currency  currencyFormatter
	theme     string
	started   time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run server.
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	if deps.Collector == nil {
		deps.Collector = metrics.NoOpCollector{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(log.DefaultConfig())
	}
	if deps.Templates == nil {
		deps.Templates = appweb.TemplatesFS
	}
	if deps.Static == nil {
		deps.Static = appweb.StaticFS
	}

	mux := http.NewServeMux()
	logger := deps.Logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		Server: http.Server{
			Addr:              cfg.Addr(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		ledger:    deps.Ledger,
		editor:    deps.Editor,
		logger:    logger,
		events:    log.NewStructuredLogger(deps.Logger),
		collector: deps.Collector,
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimitPerMinute}),
		detector:  security.NewDetector(),
		currency:  newCurrencyFormatter(cfg.CurrencySymbol, cfg.Locale),
		theme:     cfg.Theme,
		started:   time.Now(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(deps.Templates, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(deps.Static, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServerFS(sub))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	if deps.MetricsHandler != nil {
		mux.Handle("GET /metrics", deps.MetricsHandler)
	}

	// UI partials
	mux.HandleFunc("GET /ui/summary", s.handleSummary)
	mux.HandleFunc("GET /ui/transactions", s.handleTransactionList)
	mux.HandleFunc("GET /ui/editor", s.handleEditor)

	// Transactions
	mux.HandleFunc("POST /transactions/new", s.handleNewTransaction)
	mux.HandleFunc("POST /transactions/{id}/edit", s.handleEditTransaction)
	mux.HandleFunc("DELETE /transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("POST /transactions/{id}/delete", s.handleDeleteTransaction)

	// Editor dialog
	mux.HandleFunc("POST /editor/field", s.handleEditorField)
	mux.HandleFunc("POST /editor/save", s.handleEditorSave)
	mux.HandleFunc("POST /editor/cancel", s.handleEditorCancel)

	// Read-only JSON
	mux.HandleFunc("GET /api/transactions", s.handleAPITransactions)
	mux.HandleFunc("GET /api/summary", s.handleAPISummary)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(deps.Logger, deps.Collector, s.detector.ExtractClientIP)

	// Outermost first: trace, detection, headers, rate limit, routes.
	// None of the inner layers may replace the request, so the trace layer
	// sees the pattern the mux matched.
	var handler http.Handler = mux
	handler = s.limiter.Middleware(s.detector.ExtractClientIP, s.onRateLimited)(handler)
	handler = headers.Middleware(handler)
	handler = s.detector.Middleware(handler)
	handler = tracer.Middleware(handler)
	s.Handler = handler

	s.collector.RecordTotals(s.ledger.Totals())
	return s
}

// Shutdown stops background work and gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	s.collector.RecordRateLimited()
	log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
		log.NewFields().
			WithClientIP(s.detector.ExtractClientIP(r)).
			WithHTTPRequest(r.Method, r.URL.Path, "", "", "").
			ToSlice()...)
	TooManyRequestsError("Too many changes. Please wait a minute and try again.").Write(w)
}

// render executes a template into a buffer so a failure never leaves a
// half-written partial, then sends it with b's status and triggers.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any, b *HTMXResponseBuilder) {
	if b == nil {
		b = NewHTMXResponse()
	}
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldTemplate, name, log.FieldPath, r.URL.Path)
		InternalServerError("Templates not loaded").Write(w)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.events.LogError(r.Context(), "Template execution failed", err, log.ComponentTemplate, log.OpRender,
			log.LogFields{log.FieldTemplate: name})
		InternalServerError("Rendering failed").Write(w)
		return
	}
	b.BodyHTML(buf.String()).Write(w)
}

// recordChange publishes metrics for a store mutation and logs it when it
// took effect.
func (s *Server) recordChange(ctx context.Context, op string, t core.Transaction, applied bool) {
	s.collector.RecordOperation(op, applied)
	totals := s.ledger.Totals()
	s.collector.RecordTotals(totals)
	if applied {
		s.events.LogTransaction(ctx, op, t, totals)
	}
}
