// Package web provides the HTTP server and handlers for the book
// rating application.
package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"bookrate/internal/config"
	"bookrate/internal/core"
	"bookrate/internal/web/middleware"
)

// Server is the HTTP server for the book rating application.
type Server struct {
	cfg      *config.Config
	service  *core.Service
	sessions *SessionStore
	tmpl     *template.Template
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, cfg *config.Config) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		service:  service,
		sessions: NewSessionStore(cfg.Session.TTL),
		tmpl:     tmpl,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	if s.cfg.Security.EnableCSP {
		s.router.Use(securityHeaders)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Pages
	s.router.Get("/", s.handleHome)
	s.router.Post("/signin", s.handleSignIn)
	s.router.Post("/register", s.handleRegister)
	s.router.Post("/signout", s.handleSignOut)
	s.router.Post("/ratings", s.handleSubmitRatings)
	s.router.Post("/books/refresh", s.handleNewSample)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleAPIRegister)
		r.Post("/signin", s.handleAPISignIn)
		r.Post("/ratings", s.handleAPIAddRating)
		r.Get("/books", s.handleAPIBooks)
		r.Get("/stats", s.handleAPIStats)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds defensive headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		// Cover images come straight from the dataset's archive.org
		// URLs (with a picsum placeholder), so img-src stays open.
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; img-src *; style-src 'self' 'unsafe-inline'")
		next.ServeHTTP(w, r)
	})
}
