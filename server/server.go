// Package server provides the mathscriptd HTTP API: a chi-routed mux
// exposing expression evaluation and its history, grounded on
// tunaq/server/server.go + server/handlers.go + server/endpoints.go (the
// panic-safe, result-typed handler dispatch pattern), re-targeted at chi
// instead of a bare http.ServeMux and at the engine/history domain instead
// of user accounts and game sessions.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dekarrin/mathscript"
	"github.com/dekarrin/mathscript/internal/config"
	"github.com/dekarrin/mathscript/history"
	"github.com/go-chi/chi/v5"
)

// Server holds all dependencies needed to serve the mathscriptd API.
type Server struct {
	router      chi.Router
	httpServer  *http.Server
	history     history.Store
	apiKeys     []config.APIKey
	jwtSecret   []byte
	defaultMode mathscript.Mode
	unauthDelay time.Duration
}

// New builds a Server from cfg (already defaulted and validated; see
// config.Config.FillDefaults/Validate) and a ready-to-use history.Store.
func New(cfg config.Config, hist history.Store) (*Server, error) {
	mode, err := parseMode(cfg.DefaultMode)
	if err != nil {
		return nil, err
	}

	s := &Server{
		history:     hist,
		apiKeys:     cfg.APIKeys,
		jwtSecret:   []byte(cfg.TokenSecret),
		defaultMode: mode,
		unauthDelay: time.Second,
	}

	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: s.router,
	}

	return s, nil
}

func parseMode(s string) (mathscript.Mode, error) {
	switch s {
	case "degrees":
		return mathscript.Degrees, nil
	case "radians", "":
		return mathscript.Radians, nil
	default:
		return 0, fmt.Errorf("unknown mode: %q", s)
	}
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Post("/token", s.handleCreateToken())

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return requireAuth(s.jwtSecret, s.unauthDelay, next)
		})
		r.Post("/evaluate", s.handleEvaluate())
		r.Get("/history", s.handleHistoryList())
		r.Get("/history/{id}", s.handleHistoryGet())
	})

	r.Get("/info", s.handleInfo())

	return r
}

// ListenAndServe starts serving the configured address until the process is
// terminated or ctx is cancelled, in which case it attempts a graceful
// shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// Close releases the Server's history store.
func (s *Server) Close() error {
	return s.history.Close()
}
