// Package http serves the search front-end: server-rendered list and
// detail pages, a CSV download and a small JSON API.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/sangga"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Defaults for Server timeouts.
const (
	DefaultSearchTimeout   = 3 * time.Minute
	DefaultShutdownTimeout = 10 * time.Second
)

// Server serves the web front-end. Set the service fields before calling
// Open or using the server as an http.Handler.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Searches run in the background and outlive the request that
	// started them; ctx bounds them to the server's lifetime.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	Addr string

	Sessions sangga.SessionStore
	Search   sangga.SearchService
	Exporter sangga.PropertyExporter
	Logger   *slog.Logger

	// AllowedOrigins lists origins allowed to call the JSON API from a
	// browser. Empty disables CORS.
	AllowedOrigins []string
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
	SearchTimeout time.Duration
}

// NewServer creates a server with its routes registered.
func NewServer() *Server {
	s := &Server{
		server:        &http.Server{ReadHeaderTimeout: 10 * time.Second},
		router:        chi.NewRouter(),
		Logger:        slog.New(slog.DiscardHandler),
		SearchTimeout: DefaultSearchTimeout,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.router.Use(middleware.RealIP, s.logRequests, middleware.Recoverer)
	s.router.NotFound(s.handleNotFound)

	s.router.Group(func(r chi.Router) {
		r.Use(s.withSession)
		r.Get("/", s.handleIndex)
		r.Post("/search", s.handleSearch)
		r.Post("/params/category", s.handleToggleCategory)
		r.Post("/params/deal-type", s.handleToggleDealType)
		r.Post("/params/region", s.handleSelectRegion)
		r.Get("/properties/{id}", s.handlePropertyDetail)
		r.Post("/back", s.handleBack)
		r.Get("/export.csv", s.handleExport)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.corsHandler)
		r.Get("/regions", s.handleRegions)
		r.Get("/regions/{region}/districts", s.handleDistricts)
		r.Post("/search", s.handleAPISearch)
	})

	s.server.Handler = s.router
	return s
}

// corsHandler applies CORS to the API when origins are configured.
func (s *Server) corsHandler(next http.Handler) http.Handler {
	if len(s.AllowedOrigins) == 0 {
		return next
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: s.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})(next)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Open starts listening on Addr and serves in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("server stopped", "error", err)
		}
	}()
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server and cancels running searches.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	var err error
	if s.ln != nil {
		err = s.server.Shutdown(ctx)
	}
	s.cancel()
	s.wg.Wait()
	return err
}

// logRequests logs each request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.Logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.Error(w, r, sangga.Errorf(sangga.ENOTFOUND, "page not found"))
}
