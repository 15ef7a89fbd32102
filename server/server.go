package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/beastmaster-org/beastmaster/bestiary"
	"github.com/beastmaster-org/beastmaster/config"
)

// ============================================================================
// SERVER — The interactive host for the ledger
// ============================================================================
// Each request rebuilds the dashboard from scratch: criteria come from
// query parameters, the codex is immutable, and nothing is cached
// between interactions. This is the reactive re-run model — widget
// change → full re-execution.
// ============================================================================

// Server serves the dashboard over HTTP.
type Server struct {
	codex *bestiary.Codex
	log   *slog.Logger
	http  *http.Server
}

// New builds a Server around an immutable codex.
func New(cfg config.Config, codex *bestiary.Codex, log *slog.Logger) *Server {
	s := &Server{codex: codex, log: log}

	r := chi.NewRouter()
	r.Use(requestLogging(log))
	r.Get("/", s.handleDashboard)
	r.Get("/api/dashboard", s.handleAPIDashboard)
	r.Get("/healthz", s.handleHealthz)

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("serving ledger", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func requestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info("http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.Duration("elapsed", time.Since(start)),
			)
		})
	}
}
