// Package server composes the plant simulator process: the HTTP gate, the
// optional gRPC health service and the tick scheduler, all sharing one
// registry.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/xiaonanln/plantsim/config"
	"github.com/xiaonanln/plantsim/gate"
	"github.com/xiaonanln/plantsim/registry"
	"github.com/xiaonanln/plantsim/scheduler"
	"github.com/xiaonanln/plantsim/util/logger"
)

// HealthService is the gRPC health service name reported besides the
// overall "" entry
const HealthService = "plantsim"

const defaultShutdownTimeout = 5 * time.Second

type ServerConfig struct {
	HTTPAddress     string
	GRPCAddress     string // Optional: empty disables the gRPC health service
	MetricsPath     string
	TickInterval    time.Duration
	TickWorkers     int
	APIKeys         map[string]string
	AccessRules     []config.AccessRule
	ShutdownTimeout time.Duration
}

// NewServerConfig builds a ServerConfig from a validated file configuration
func NewServerConfig(cfg *config.Config) *ServerConfig {
	return &ServerConfig{
		HTTPAddress:  cfg.Server.HTTPAddr,
		GRPCAddress:  cfg.Server.GRPCAddr,
		MetricsPath:  cfg.Server.MetricsPath,
		TickInterval: cfg.TickInterval(),
		TickWorkers:  cfg.Simulation.TickWorkers,
		APIKeys:      cfg.KeySet(),
		AccessRules:  cfg.AccessRules,
	}
}

type Server struct {
	config    *ServerConfig
	Registry  *registry.Registry
	scheduler *scheduler.Scheduler
	gate      *gate.Gate
	health    *health.Server
	logger    *logger.Logger
}

func NewServer(config *ServerConfig, opts ...registry.Option) (*Server, error) {
	if err := validateServerConfig(config); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}

	access, err := newAccessValidator(config.AccessRules)
	if err != nil {
		return nil, err
	}

	reg := registry.New(opts...)
	g, err := gate.NewGate(&gate.GateConfig{
		Registry:    reg,
		APIKeys:     config.APIKeys,
		Access:      access,
		MetricsPath: config.MetricsPath,
	})
	if err != nil {
		return nil, err
	}

	return &Server{
		config:    config,
		Registry:  reg,
		scheduler: scheduler.New(reg, config.TickInterval, config.TickWorkers),
		gate:      g,
		health:    health.NewServer(),
		logger:    logger.NewLogger(fmt.Sprintf("Server(%s)", config.HTTPAddress)),
	}, nil
}

func newAccessValidator(rules []config.AccessRule) (*config.AccessValidator, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	v, err := config.NewAccessValidator(rules)
	if err != nil {
		return nil, fmt.Errorf("invalid access rules: %w", err)
	}
	return v, nil
}

func validateServerConfig(config *ServerConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if config.HTTPAddress == "" {
		return fmt.Errorf("HTTPAddress cannot be empty")
	}

	if config.TickInterval <= 0 {
		config.TickInterval = scheduler.DefaultInterval
	}
	if config.TickWorkers <= 0 {
		config.TickWorkers = 1
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = defaultShutdownTimeout
	}

	return nil
}

// Run serves until ctx is cancelled or a listener fails, then shuts every
// component down
func (server *Server) Run(ctx context.Context) error {
	httpListener, err := net.Listen("tcp", server.config.HTTPAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", server.config.HTTPAddress, err)
	}

	var grpcListener net.Listener
	if server.config.GRPCAddress != "" {
		grpcListener, err = net.Listen("tcp", server.config.GRPCAddress)
		if err != nil {
			httpListener.Close()
			return fmt.Errorf("failed to listen on %s: %w", server.config.GRPCAddress, err)
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)

	httpServer := &http.Server{
		Handler:           server.gate.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	group.Go(func() error {
		server.logger.Infof("HTTP gate listening on %s", httpListener.Addr().String())
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	var grpcServer *grpc.Server
	if grpcListener != nil {
		grpcServer = grpc.NewServer()
		healthpb.RegisterHealthServer(grpcServer, server.health)
		reflection.Register(grpcServer)
		server.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		server.health.SetServingStatus(HealthService, healthpb.HealthCheckResponse_SERVING)

		group.Go(func() error {
			server.logger.Infof("gRPC health service listening on %s", grpcListener.Addr().String())
			if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("gRPC server error: %w", err)
			}
			return nil
		})
	}

	group.Go(func() error {
		return server.scheduler.Run(groupCtx)
	})

	group.Go(func() error {
		<-groupCtx.Done()
		server.logger.Infof("Shutting down")
		server.health.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.config.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			server.logger.Errorf("HTTP shutdown error: %v", err)
		}
		if grpcServer != nil {
			grpcServer.GracefulStop()
		}
		return nil
	})

	err = group.Wait()
	server.logger.Infof("Server stopped")
	return err
}
