package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/kailas-cloud/memvid-gateway/internal/bindaddr"
	"github.com/kailas-cloud/memvid-gateway/internal/config"
	dbRedis "github.com/kailas-cloud/memvid-gateway/internal/db/redis"
	logpkg "github.com/kailas-cloud/memvid-gateway/internal/logger"
	"github.com/kailas-cloud/memvid-gateway/internal/metrics"
	"github.com/kailas-cloud/memvid-gateway/internal/searcher"
	grpcTransport "github.com/kailas-cloud/memvid-gateway/internal/transport/grpc"
	openaiLLM "github.com/kailas-cloud/memvid-gateway/internal/transport/openai"
	"github.com/kailas-cloud/memvid-gateway/internal/version"
)

func main() {
	// "healthcheck" probes a running instance and exits; used by
	// container HEALTHCHECK directives.
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		os.Exit(runHealthcheck())
	}

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting memvid gateway",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("backend", cfg.Backend.Kind),
		zap.Int("grpc_port", cfg.GRPC.Port),
		zap.Int("metrics_port", cfg.Metrics.Port),
	)

	// Register Prometheus metrics explicitly (no init())
	metrics.Register()

	backend, cleanup, err := buildBackend(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build search backend", zap.Error(err))
	}
	defer cleanup()

	logger.Info("Search backend ready",
		zap.String("memvid_file", backend.MemvidFile()),
		zap.Int32("frame_count", backend.FrameCount()),
	)

	// gRPC server with canonical logging and panic recovery
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcTransport.RecoveryInterceptor(logger),
			grpcTransport.WideEventInterceptor(logger),
		),
	)
	grpcTransport.RegisterMemvidServiceServer(grpcServer, grpcTransport.NewServer(backend, logger))
	grpcTransport.RegisterHealthServer(grpcServer, grpcTransport.NewHealthService(backend, logger))

	addr := bindaddr.Resolve(cfg.GRPC.BindAddress, cfg.GRPC.Port, nil)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal("Failed to listen", zap.String("addr", addr), zap.Error(err))
	}

	metricsSrv := metrics.NewHTTPServer(bindaddr.Resolve(cfg.GRPC.BindAddress, cfg.Metrics.Port, nil))

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting metrics server", zap.String("addr", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server error", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("Starting gRPC server", zap.String("addr", addr))
		if err := grpcServer.Serve(ln); err != nil {
			logger.Fatal("gRPC server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.GRPC.ShutdownSec)*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("Graceful stop timed out, forcing stop")
		grpcServer.Stop()
	}

	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during metrics shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildBackend assembles the decorator chain: Mock/Bleve -> Cached.
func buildBackend(cfg config.Config, logger *zap.Logger) (searcher.Searcher, func(), error) {
	cleanup := func() {}

	var backend searcher.Searcher
	switch cfg.Backend.Kind {
	case config.BackendMock:
		backend = searcher.NewMock(logger)
	case config.BackendBleve:
		b, err := searcher.OpenBleve(cfg.Backend.IndexPath, logger)
		if err != nil {
			return nil, cleanup, fmt.Errorf("open index %s: %w", cfg.Backend.IndexPath, err)
		}
		if cfg.LLM.Enabled {
			b.WithSynthesizer(openaiLLM.NewSynthesizer(&openaiLLM.Config{
				APIKey:   cfg.LLM.APIKey,
				BaseURL:  cfg.LLM.BaseURL,
				Model:    cfg.LLM.Model,
				Provider: cfg.LLM.Provider,
				Logger:   logger,
			}))
			logger.Info("Answer synthesis enabled",
				zap.String("model", cfg.LLM.Model),
				zap.String("provider", cfg.LLM.Provider),
			)
		}
		backend = b
		cleanup = func() {
			if err := b.Close(); err != nil {
				logger.Error("Error closing index", zap.Error(err))
			}
		}
	default:
		return nil, cleanup, fmt.Errorf("unknown backend kind %q", cfg.Backend.Kind)
	}

	if cfg.Cache.Enabled {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return nil, cleanup, fmt.Errorf("create cache store: %w", err)
		}
		inner := cleanup
		cleanup = func() {
			store.Close()
			inner()
		}
		backend = searcher.NewCached(
			backend, store, time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.SearchCacheTotal, logger,
		)
		logger.Info("Search cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	return backend, cleanup, nil
}

// runHealthcheck dials the local gRPC port and reports readiness via the
// process exit code. IPv6 loopback is tried first to match the dual-stack
// wildcard bind, then IPv4.
func runHealthcheck() int {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "healthcheck: load config:", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, host := range []string{"[::1]", "127.0.0.1"} {
		addr := fmt.Sprintf("%s:%d", host, cfg.GRPC.Port)
		if checkOne(ctx, addr) {
			return 0
		}
	}
	fmt.Fprintln(os.Stderr, "healthcheck: backend not serving")
	return 1
}

func checkOne(ctx context.Context, addr string) bool {
	conn, err := grpclib.NewClient(addr,
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
		grpcTransport.ForceCodecOption(),
	)
	if err != nil {
		return false
	}
	defer func() { _ = conn.Close() }()

	res, err := grpcTransport.NewHealthClient(conn).Check(ctx, &grpcTransport.HealthCheckRequest{})
	if err != nil {
		return false
	}
	return res.Status == grpcTransport.HealthStatusServing
}
