package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultShutdownTimeout = 5 * time.Second
	readHeaderTimeout      = 10 * time.Second
	idleTimeout            = 120 * time.Second
)

// Server represents the HTTP server
type Server struct {
	http            *http.Server
	shutdownTimeout time.Duration
	listening       chan struct{}
	addr            net.Addr
}

// NewServer creates a new server instance listening on addr.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		},
		shutdownTimeout: defaultShutdownTimeout,
		listening:       make(chan struct{}),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to five seconds.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	s.addr = ln.Addr()
	close(s.listening)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", s.addr.String())
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		slog.Info("server stopped")
		return nil
	})

	return g.Wait()
}

// Listening is closed once the server accepts connections.
func (s *Server) Listening() <-chan struct{} {
	return s.listening
}

// Addr returns the bound address. It is only valid after Listening fires.
func (s *Server) Addr() net.Addr {
	return s.addr
}
