package server

import (
	"context"
	"net/http"
	"time"

	"github.com/vertextoedge/bbb-archive/internal/port"
	"go.uber.org/zap"
)

// meetingsPrefix is the URL prefix under which the meetings root is served
const meetingsPrefix = "/meetings/"

// Config contains HTTP server configuration
type Config struct {
	BindAddr     string
	MeetingsDir  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		BindAddr:     "0.0.0.0:5000",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
}

// Server is the local web UI: it lists downloaded sessions, serves their
// files for playback, and accepts new download requests via a form.
type Server struct {
	config     *Config
	store      port.Store
	downloader port.SessionDownloader
	logger     *zap.Logger
	server     *http.Server
}

// New creates the web UI server.
func New(cfg *Config, store port.Store, downloader port.SessionDownloader, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		config:     cfg,
		store:      store,
		downloader: downloader,
		logger:     logger,
	}

	s.server = &http.Server{
		Addr:         cfg.BindAddr,
		Handler:      LoggingMiddleware(logger)(s.Handler()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Handler returns the route mux without the outer middleware. Split out so
// tests can drive it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)

	// Session files are served straight from disk. Caching is disabled so
	// that playing several meetings in short succession always gets fresh
	// bytes.
	files := http.StripPrefix(meetingsPrefix, http.FileServer(http.Dir(s.config.MeetingsDir)))
	mux.Handle(meetingsPrefix, noStore(files))

	return mux
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting web UI", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping web UI")
	return s.server.Shutdown(ctx)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.store != nil {
		if err := s.store.Ping(); err != nil {
			s.logger.Error("health check failed", zap.Error(err))
			http.Error(w, "Database connection failed", http.StatusServiceUnavailable)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"healthy","time":"` + time.Now().Format(time.RFC3339) + `"}`))
}

// noStore disables client-side caching for the wrapped handler
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
