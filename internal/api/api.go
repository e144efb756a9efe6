// Package api hosts the JSON HTTP surface of the task service.
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/taskhub/internal/auth/token"
	"github.com/louisbranch/taskhub/internal/platform/httpx"
	"github.com/louisbranch/taskhub/internal/platform/id"
	"github.com/louisbranch/taskhub/internal/platform/timeouts"
	"github.com/louisbranch/taskhub/internal/storage"
)

// Config defines startup inputs for the API service.
type Config struct {
	HTTPAddr string
	Users    storage.UserStore
	Tasks    storage.TaskStore
	Tokens   token.Config
}

// handlers carries the collaborators behind the HTTP endpoints. The clock and
// id generator are injectable for tests.
type handlers struct {
	users  storage.UserStore
	tasks  storage.TaskStore
	tokens token.Config
	now    func() time.Time
	newID  func() (string, error)
}

func newHandlers(cfg Config) handlers {
	return handlers{
		users:  cfg.Users,
		tasks:  cfg.Tasks,
		tokens: cfg.Tokens,
		now:    time.Now,
		newID:  id.NewID,
	}
}

// NewHandler builds the root handler with its middleware chain.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Users == nil {
		return nil, errors.New("user store is required")
	}
	if cfg.Tasks == nil {
		return nil, errors.New("task store is required")
	}

	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(cfg))

	return httpx.Chain(mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		withActor(cfg.Tokens),
		httpx.RequestLogger(log.Default()),
	), nil
}

// Server hosts the API HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewServer validates config and constructs an API server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose api handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("api server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
