package server

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/handler"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/workers"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	workers    *workers.Workers
	logger     *logger.Logger

	shutdownOnce sync.Once
}

// NewServer opens a listener for every transport that has a handler and
// attaches the background workers, which run for as long as the server
// does. bg may be nil.
func NewServer(handlers *handler.Handlers, bg *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{workers: bg, logger: logger}

	if handlers.HTTP != nil {
		srv, err := newHTTPServer(handlers.HTTP.Init(), cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.httpServer = srv
	}
	if handlers.GRPC != nil {
		srv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			if servers.httpServer != nil {
				servers.httpServer.listener.Close()
			}
			return nil, err
		}
		servers.gRPCServer = srv
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Msg("server stopped with error")
	}
}

func (s *server) Shutdown() {
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// finish HTTP server
		if s.httpServer != nil {
			s.httpServer.shutdown(ctx)
		}

		// finish gRPC server
		if s.gRPCServer != nil {
			s.gRPCServer.shutdown(ctx)
		}
	})
}

// run serves until ctx is cancelled or one of the listeners or workers
// fails, then shuts everything down and waits for it to return.
func (s *server) run(ctx context.Context) error {
	if s.httpServer == nil && s.gRPCServer == nil {
		return errNoServersAreCreated
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 3)
	var wg sync.WaitGroup

	// launch all created servers
	if s.httpServer != nil {
		wg.Go(func() { errs <- s.httpServer.serve() })
	}
	if s.gRPCServer != nil {
		wg.Go(func() { errs <- s.gRPCServer.serve() })
	}
	if s.workers != nil && s.workers.Len() > 0 {
		wg.Go(func() { errs <- s.workers.Run(ctx) })
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errs:
	}

	cancel()
	s.Shutdown()
	wg.Wait()
	close(errs)

	for err := range errs {
		runErr = errors.Join(runErr, err)
	}
	if runErr == nil {
		s.logger.Info().Msg("server Shutdown gracefully")
	}

	return runErr
}
