package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/smartpack-service/config"
)

const (
	minWriteTimeout        = 15 * time.Second
	writeTimeoutHeadroom   = 5 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// Server serves the API until its context ends, then drains in-flight requests.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration

	ready chan struct{} // closed once Run has tried to bind
	addr  string
}

// NewServer creates a Server for handler. The write timeout always exceeds the
// request timeout so a timed-out handler can still send its 504.
func NewServer(handler http.Handler, cfg config.ServerConfig) *Server {
	shutdown := cfg.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = defaultShutdownTimeout
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      max(minWriteTimeout, cfg.RequestTimeout+writeTimeoutHeadroom),
			IdleTimeout:       time.Minute,
			MaxHeaderBytes:    1 << 20,
		},
		shutdownTimeout: shutdown,
		ready:           make(chan struct{}),
	}
}

// Run binds the listener and serves until ctx is done or serving fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		close(s.ready)
		return err
	}
	s.addr = ln.Addr().String()
	close(s.ready)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", s.addr).Msg("Server listening")
		if err := s.httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Draining connections")
		return s.Shutdown()
	})
	return g.Wait()
}

// Addr blocks until Run has bound its listener and returns the address.
// It is empty when binding failed.
func (s *Server) Addr() string {
	<-s.ready
	return s.addr
}

// Shutdown stops accepting connections and waits up to the shutdown timeout
// for active requests.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}
