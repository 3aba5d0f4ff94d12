package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/agent-sandbox/internal/config"
	"github.com/KirkDiggler/agent-sandbox/internal/handlers/sandbox/v1alpha1"
	"github.com/KirkDiggler/agent-sandbox/internal/handlers/web"
)

const shutdownTimeout = 30 * time.Second

var (
	grpcPort  int
	httpPort  int
	redisAddr string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC and HTTP servers",
	Long:  `Start the Agent Sandbox gRPC service and the JSON API used by the dashboard.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "grpc-port", 0, "gRPC server port (overrides SANDBOX_GRPC_PORT)")
	serverCmd.Flags().IntVar(&httpPort, "http-port", 0, "HTTP server port (overrides SANDBOX_HTTP_PORT)")
	serverCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address (overrides SANDBOX_REDIS_ADDR)")
}

// loadConfig reads the environment and applies any flags that were set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("grpc-port") {
		cfg.GRPCPort = grpcPort
	}
	if flags.Changed("http-port") {
		cfg.HTTPPort = httpPort
	}
	if flags.Changed("redis") {
		cfg.RedisAddr = redisAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := connectRedis(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = redisClient.Close() // nolint:errcheck // best effort on shutdown
	}()

	repos, err := newRepositories(cfg, redisClient)
	if err != nil {
		return err
	}
	defer repos.close()

	gateway, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	svcs, err := newServices(cfg, repos, gateway)
	if err != nil {
		return err
	}

	grpcHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		TurnService:    svcs.turn,
		WhisperService: svcs.whisper,
		StateService:   svcs.state,
	})
	if err != nil {
		return fmt.Errorf("failed to create grpc handler: %w", err)
	}

	webHandler, err := web.NewHandler(&web.HandlerConfig{
		TurnService:    svcs.turn,
		WhisperService: svcs.whisper,
		StateService:   svcs.state,
		CORSOrigins:    cfg.CORSOrigins,
	})
	if err != nil {
		return fmt.Errorf("failed to create web handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	grpcLog := grpcLogger(logger)
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpcLog),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpcLog),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterSandboxServiceServer(srv, grpcHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           webHandler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve grpc: %w", err)
		}
	}()
	go func() {
		slog.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve http: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal, gracefully stopping...")
	case err := <-errChan:
		srv.Stop()
		_ = httpServer.Close() // nolint:errcheck // already failing
		return err
	}

	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown incomplete", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
		srv.Stop()
	case <-stopped:
		slog.Info("Server stopped gracefully")
	}

	return nil
}
