package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"

	api "github.com/oshokin/getver/internal/api/grpc/getver"
	"github.com/oshokin/getver/internal/config"
	"github.com/oshokin/getver/internal/logger"
	pb "github.com/oshokin/getver/internal/pb/getver/v1"
	"github.com/oshokin/getver/internal/service/common"
)

// Options controls the getver-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// Package overrides the package resolved for requests that name none.
	Package string
	// Extractor overrides the configured tag extractor backend.
	Extractor string
	// Ready, when set, receives the bound address once the server accepts connections.
	Ready func(address string)
}

// Run starts the gRPC server and blocks until context is canceled or server stops.
// Loads configuration first, then applies command line overrides.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "getver-server")

	cfg, err := loadSettings(opts)
	if err != nil {
		return err
	}

	resolver, err := common.NewResolver(cfg)
	if err != nil {
		return fmt.Errorf("initialise resolver: %w", err)
	}

	listenAddress := resolveListenAddress(cfg.ServerAddress, opts.ListenAddress)

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	defaultPackage := common.DefaultPackage(cfg)

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(ctx)))
	pb.RegisterVersionServiceServer(grpcServer, api.NewServer(resolver, defaultPackage))

	logger.InfoKV(ctx, "Version server listening",
		"listen_address", lis.Addr().String(),
		"default_package", defaultPackage,
		"extractor", cfg.Extractor,
	)

	if opts.Ready != nil {
		opts.Ready(lis.Addr().String())
	}

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// loadSettings reads the configuration file and applies overrides from opts.
func loadSettings(opts *Options) (*config.Config, error) {
	cfg, err := common.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if opts.Package != "" {
		cfg.Package = opts.Package
	}

	if opts.Extractor != "" {
		cfg.Extractor = opts.Extractor
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	if err := common.ConfigureLogger(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveListenAddress returns the override when provided, otherwise the configured address.
func resolveListenAddress(configAddr, override string) string {
	if override != "" {
		return override
	}

	return configAddr
}

// loggingInterceptor logs every unary call with its duration at debug level.
func loggingInterceptor(base context.Context) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		started := time.Now()
		resp, err := handler(logger.ToContext(ctx, logger.FromContext(base)), req)

		logger.DebugKV(base, "Handled call",
			"method", info.FullMethod,
			"duration", time.Since(started).String(),
			"error", err,
		)

		return resp, err
	}
}
