// Package server exposes film resolution over HTTP, as a full HTML page for
// embedding and as JSON.
package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"filmwatch/internal/logging"
	"filmwatch/internal/media"
	"filmwatch/internal/render"
	"filmwatch/internal/resolve"
)

// Server serves resolutions. The zero value is not usable; call New.
type Server struct {
	resolver      *resolve.Resolver
	html          *render.HTML
	directoryURL  string
	allowQueryDir bool
	logger        *log.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithDirectoryOverride lets requests name their own directory with
// ?directory=. Off by default: the server then only fetches directoryURL.
func WithDirectoryOverride(allow bool) Option {
	return func(s *Server) {
		s.allowQueryDir = allow
	}
}

// New creates a Server over the configured directoryURL.
func New(r *resolve.Resolver, html *render.HTML, directoryURL string, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		resolver:     r,
		html:         html,
		directoryURL: directoryURL,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("GET /watch", s.watchPage)
	mux.HandleFunc("GET /api/watch", s.watchJSON)
	return s.logRequests(mux)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) resolve(r *http.Request) media.Presentation {
	q := r.URL.Query()
	req := resolve.Request{
		Title:        q.Get("title"),
		URL:          q.Get("url"),
		DirectoryURL: s.directoryURL,
	}
	if q.Has("directory") {
		if s.allowQueryDir {
			req.DirectoryURL = q.Get("directory")
		} else {
			s.logger.Debug("ignoring request directory", "directory", q.Get("directory"))
		}
	}
	return s.resolver.Resolve(r.Context(), req)
}

func (s *Server) watchPage(w http.ResponseWriter, r *http.Request) {
	p := s.resolve(r)

	var buf bytes.Buffer
	if err := s.html.Page(&buf, p); err != nil {
		s.logger.Error("rendering page", "err", err)
		http.Error(w, "rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) watchJSON(w http.ResponseWriter, r *http.Request) {
	p := s.resolve(r)

	var buf bytes.Buffer
	if err := render.JSON(&buf, p); err != nil {
		s.logger.Error("encoding presentation", "err", err)
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = buf.WriteTo(w)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"took", time.Since(start))
	})
}
