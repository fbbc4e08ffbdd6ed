package main

import (
	"context"
	"fmt"
	"log"
	"net"
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

	"github.com/KirkDiggler/showdown-player/internal/handlers/api/v1alpha1"
)

const shutdownTimeout = 30 * time.Second

var (
	grpcPort      int
	redisEndpoint string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC decision server",
	Long:  `Start the decision server. Clients send Showdown requests and receive /choose payloads.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().StringVar(&redisEndpoint, "redis", "", "redis endpoint for battle sessions (empty keeps them in memory)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := newSessionRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create session repository: %w", err)
	}
	defer closeRepo()

	factory, err := policyFactory(cfg)
	if err != nil {
		return err
	}

	decisionService, err := newDecisionService(cfg, repo, factory)
	if err != nil {
		return fmt.Errorf("failed to create decision service: %w", err)
	}

	decisionHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		DecisionService: decisionService,
	})
	if err != nil {
		return fmt.Errorf("failed to create decision handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterDecisionServiceServer(srv, decisionHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.DecisionServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	log.Printf("gRPC server starting on port %d...", cfg.GRPCPort)
	return serve(ctx, srv, lis, healthServer)
}

// serve runs srv until it fails or ctx ends, then drains in-flight calls
// for up to shutdownTimeout before forcing a stop.
func serve(ctx context.Context, srv *grpc.Server, lis net.Listener, healthServer *health.Server) error {
	errChan := make(chan error, 1)
	go func() {
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	log.Println("Received shutdown signal, draining decision calls...")
	healthServer.Shutdown()

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-time.After(shutdownTimeout):
		log.Println("Graceful shutdown timeout exceeded, forcing stop")
		srv.Stop()
	case <-stopped:
		log.Println("Server stopped gracefully")
	}
	return nil
}

func logFunc(_ context.Context, level grpc_logging.Level, msg string, fields ...any) {
	log.Printf("[%v] %s %v", level, msg, fields)
}
