package web

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/datadash/datadash/internal/errors"
	"github.com/datadash/datadash/internal/logger"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds graceful shutdown once the context is cancelled.
const ShutdownTimeout = 5 * time.Second

// Server runs one HTTP service until its context is cancelled.
type Server struct {
	Name string
	HTTP *http.Server
	Log  logger.Logger
}

// NewServer wraps handler in an http.Server listening on addr.
func NewServer(name, addr string, handler http.Handler, log logger.Logger) *Server {
	if log == nil {
		log = logger.Noop()
	}
	return &Server{
		Name: name,
		HTTP: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		Log: log,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.HTTP.Addr)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrHTTP,
			"Cannot listen on "+s.HTTP.Addr,
			"Pick a free port with --addr, e.g. --addr :8081")
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	// Hijacked connections (realtime streams) are not tracked by Shutdown;
	// their request contexts derive from baseCtx so shutdown ends them.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	s.HTTP.BaseContext = func(net.Listener) context.Context { return baseCtx }
	s.HTTP.RegisterOnShutdown(cancelBase)

	errCh := make(chan error, 1)
	go func() {
		s.Log.Info("%s listening on http://%s", s.Name, ln.Addr())
		errCh <- s.HTTP.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.WrapWithCode(err, errors.ErrHTTP, s.Name+" stopped unexpectedly", "")
		}
		return nil
	case <-ctx.Done():
	}

	s.Log.Info("%s shutting down", s.Name)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := s.HTTP.Shutdown(shutdownCtx); err != nil {
		_ = s.HTTP.Close()
		return errors.WrapWithCode(err, errors.ErrHTTP, s.Name+" did not shut down cleanly", "")
	}
	<-errCh
	s.Log.Info("%s stopped", s.Name)
	return nil
}

// RunAll runs every server until ctx is done or one of them fails, in which
// case the rest are shut down too.
func RunAll(ctx context.Context, servers ...*Server) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(func() error { return s.Run(ctx) })
	}
	return g.Wait()
}
