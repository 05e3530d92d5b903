package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-cinema/internal/config"
	"github.com/MKhiriev/go-cinema/internal/handler"
	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/workers"
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	background workers.Worker

	done     chan struct{}
	stopOnce sync.Once

	logger *logger.Logger
}

// NewServer binds the listeners of every configured transport. background
// runs for the lifetime of the servers and may be nil.
func NewServer(handlers *handler.Handlers, background workers.Worker, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		background: background,
		done:       make(chan struct{}),
		logger:     logger,
	}

	var err error
	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer, err = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
		if err != nil {
			return nil, err
		}
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer, err = newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			servers.closeListeners()
			return nil, err
		}
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// RunServer blocks until SIGTERM, SIGINT, SIGQUIT or a call to Shutdown.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.run(ctx)
}

func (s *server) Shutdown() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *server) run(ctx context.Context) {
	backgroundCtx, cancelBackground := context.WithCancel(ctx)
	defer cancelBackground()

	var wg sync.WaitGroup

	if s.background != nil {
		s.logger.Info().Msg("Launching background workers")
		wg.Go(func() { s.background.Run(backgroundCtx) })
	}
	if s.httpServer != nil {
		s.logger.Info().Str("address", s.httpServer.addr()).Msg("Launching HTTP server")
		wg.Go(s.httpServer.RunServer)
	}
	if s.gRPCServer != nil {
		s.logger.Info().Str("address", s.gRPCServer.addr()).Msg("Launching GRPC server")
		wg.Go(s.gRPCServer.RunServer)
	}

	// listen for stop signals
	select {
	case <-ctx.Done():
	case <-s.done:
	}
	s.logger.Info().Msg("shutting down...")

	// health reports NOT_SERVING while HTTP drains
	if s.gRPCServer != nil {
		s.gRPCServer.handler.Shutdown()
	}
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown()
	}
	cancelBackground()

	wg.Wait()
	s.logger.Info().Msg("server Shutdown gracefully")
}

func (s *server) closeListeners() {
	if s.httpServer != nil {
		_ = s.httpServer.listener.Close()
	}
	if s.gRPCServer != nil {
		_ = s.gRPCServer.listener.Close()
	}
}
