package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
	"github.com/TeddyJubu/unified-mcp/internal/ports"
)

// Server is the unified-mcp status server.
type Server struct {
	httpServer *http.Server
	catalog    ports.CatalogProvider
	message    string
	masking    bool
	log        *slog.Logger
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a server bound to settings.Server.Addr().
func New(settings domain.Settings, catalog ports.CatalogProvider, opts ...Option) *Server {
	s := &Server{
		catalog: catalog,
		message: settings.Server.Message,
		masking: settings.Masking.Enabled,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.message == "" {
		s.message = domain.DefaultSettings().Server.Message
	}

	s.httpServer = &http.Server{
		Addr:              settings.Server.Addr(),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Route("/api/endpoints", func(r chi.Router) {
		r.Get("/", s.handleEndpoints)
		r.Get("/latest", s.handleLatest)
	})

	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening. It blocks until the server is stopped.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until the server is stopped.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("server.listening", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.message))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type endpointsResponse struct {
	Source     string            `json:"source"`
	MostRecent *string           `json:"most_recent"`
	Endpoints  []domain.Endpoint `json:"endpoints"`
}

func (s *Server) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	cat := s.catalog.Current()

	resp := endpointsResponse{
		Source:    cat.Source,
		Endpoints: make([]domain.Endpoint, 0, len(cat.Endpoints)),
	}
	for _, ep := range cat.Endpoints {
		resp.Endpoints = append(resp.Endpoints, s.present(ep))
	}
	if latest := cat.Latest(); latest != nil {
		name := latest.Name
		resp.MostRecent = &name
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	latest := s.catalog.Current().Latest()
	if latest == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no endpoint available"})
		return
	}
	writeJSON(w, http.StatusOK, s.present(*latest))
}

func (s *Server) present(ep domain.Endpoint) domain.Endpoint {
	if s.masking {
		return ep.Masked()
	}
	return ep
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
