// Package api exposes the dashboard over HTTP: a login-gated JSON
// surface plus CSV/PDF report downloads.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/sysdash/sysdash/internal/auth"
	"github.com/sysdash/sysdash/internal/config"
	"github.com/sysdash/sysdash/internal/store"
	"github.com/sysdash/sysdash/internal/telemetry"
)

// Router handles HTTP routing
type Router struct {
	mux         *http.ServeMux
	config      *config.Config
	cache       *store.Cache
	sessions    *auth.SessionStore
	credentials auth.Credentials
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, cache *store.Cache, sessions *auth.SessionStore) *Router {
	r := &Router{
		mux:      http.NewServeMux(),
		config:   cfg,
		cache:    cache,
		sessions: sessions,
		credentials: auth.Credentials{
			Username:     cfg.AuthUser,
			Password:     cfg.AuthPass,
			PasswordHash: cfg.AuthPassHash,
		},
	}

	r.setupRoutes()
	return r
}

// setupRoutes configures all routes
func (r *Router) setupRoutes() {
	r.mux.HandleFunc("/api/health", r.handleHealth)
	r.mux.HandleFunc("/api/login", r.handleLogin)
	r.mux.HandleFunc("/api/logout", r.requireSession(r.handleLogout))

	r.mux.HandleFunc("/api/state", r.requireSession(r.handleState))
	r.mux.HandleFunc("/api/logs", r.requireSession(r.handleLogs))
	r.mux.HandleFunc("/api/charts", r.requireSession(r.handleCharts))

	r.mux.HandleFunc("/api/config/thresholds", r.requireSession(r.handleThresholds))
	r.mux.HandleFunc("/api/refresh", r.requireSession(r.handleRefresh))

	r.mux.HandleFunc("/api/report/summary", r.requireSession(r.handleReportSummary))
	r.mux.HandleFunc("/api/report/csv", r.requireSession(r.handleReportCSV))
	r.mux.HandleFunc("/api/report/pdf", r.requireSession(r.handleReportPDF))

	r.mux.Handle("/metrics", promhttp.Handler())
}

// Handler returns the outer handler with security headers, request
// logging, and instrumentation applied.
func (r *Router) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		r.addSecurityHeaders(rec)
		r.mux.ServeHTTP(rec, req)

		telemetry.RecordRequest(req.URL.Path, rec.status)
		log.Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}

func (r *Router) addSecurityHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("Referrer-Policy", "no-referrer")
	h.Set("Cache-Control", "no-store")
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
