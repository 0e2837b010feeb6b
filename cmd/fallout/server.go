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

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/debnet/fallout/internal/autocomplete"
	"github.com/debnet/fallout/internal/clients/falloutapi"
	"github.com/debnet/fallout/internal/config"
	uiv1 "github.com/debnet/fallout/internal/handlers/ui/v1"
	"github.com/debnet/fallout/internal/handlers/web"
	"github.com/debnet/fallout/internal/orchestrators/combat"
	"github.com/debnet/fallout/internal/orchestrators/dice"
	"github.com/debnet/fallout/internal/orchestrators/panel"
	"github.com/debnet/fallout/internal/orchestrators/search"
	"github.com/debnet/fallout/internal/pkg/clock"
	"github.com/debnet/fallout/internal/pkg/idgen"
	"github.com/debnet/fallout/internal/redis"
	"github.com/debnet/fallout/internal/repositories/uistate"
)

var (
	configPath string
	httpAddr   string
	grpcPort   int
	redisAddr  string
	apiURL     string
	logLevel   string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP and gRPC servers",
	Long:  `Start the browser HTTP API and the UI gRPC service.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")
	serverCmd.Flags().StringVar(&httpAddr, "http-addr", "", "HTTP listen address (overrides config)")
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides config)")
	serverCmd.Flags().StringVar(&redisAddr, "redis", "", `UI state store: host:port, redis:// URL, "memory" or "miniredis" (overrides config)`)
	serverCmd.Flags().StringVar(&apiURL, "api-url", "", "Fallout web application URL (overrides config)")
	serverCmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if httpAddr != "" {
		cfg.Server.HTTPAddr = httpAddr
	}
	if grpcPort != 0 {
		cfg.Server.GRPCPort = grpcPort
	}
	if redisAddr != "" {
		cfg.Redis.Endpoint = redisAddr
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stateRepo, closeState, err := newStateRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeState()

	webHandler, uiHandler, err := newHandlers(cfg, stateRepo)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)
	uiv1.RegisterUIServiceServer(grpcServer, uiHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(uiv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(grpcServer)

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           webHandler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("gRPC server starting", "addr", cfg.GRPCAddr())
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("failed to serve gRPC: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down servers...")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		httpErr := httpServer.Shutdown(shutdownCtx)

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			grpcServer.Stop()
		case <-stopped:
			slog.Info("Servers stopped gracefully")
		}

		return httpErr
	})

	return g.Wait()
}

// newStateRepository picks the UI state store from the redis endpoint
func newStateRepository(ctx context.Context, cfg *config.Config) (uistate.Repository, func(), error) {
	switch cfg.Redis.Endpoint {
	case config.RedisMemory:
		slog.Info("UI state kept in memory")
		return uistate.NewInMemoryRepository(clock.New()), func() {}, nil
	case config.RedisEmbedded:
		mr, err := miniredis.Run()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start embedded redis: %w", err)
		}
		slog.Info("UI state kept in embedded redis", "addr", mr.Addr())
		repo, closeClient, err := newRedisRepository(ctx, mr.Addr(), cfg)
		if err != nil {
			mr.Close()
			return nil, nil, err
		}
		return repo, func() {
			closeClient()
			mr.Close()
		}, nil
	default:
		return newRedisRepository(ctx, cfg.Redis.Endpoint, cfg)
	}
}

func newRedisRepository(ctx context.Context, endpoint string, cfg *config.Config) (uistate.Repository, func(), error) {
	client, err := redis.NewClient(endpoint, &redis.Options{PoolSize: 10, MaxRetries: 3})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", endpoint, err)
	}

	repo, err := uistate.NewRedisRepository(&uistate.Config{
		Client: client,
		Clock:  clock.New(),
		TTL:    cfg.Redis.StateTTL,
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return repo, func() { _ = client.Close() }, nil
}

func newHandlers(cfg *config.Config, stateRepo uistate.Repository) (*web.Handler, *uiv1.Handler, error) {
	apiClient, err := falloutapi.New(&falloutapi.Config{
		BaseURL:     cfg.API.BaseURL,
		HTTPTimeout: cfg.API.Timeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create API client: %w", err)
	}

	searchService, err := search.NewOrchestrator(&search.Config{
		Client:      apiClient,
		Bindings:    cfg.Bindings(),
		IDGenerator: idgen.NewUUID("search"),
		Tracker:     autocomplete.NewTracker(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create search service: %w", err)
	}

	combatService, err := combat.NewOrchestrator(&combat.Config{
		Client:      apiClient,
		IDGenerator: idgen.NewUUID("sim"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create combat service: %w", err)
	}

	diceService, err := dice.NewOrchestrator(&dice.Config{
		IDGenerator: idgen.NewUUID("roll"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create dice service: %w", err)
	}

	panelService, err := panel.NewOrchestrator(&panel.Config{StateRepo: stateRepo})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create panel service: %w", err)
	}

	webHandler, err := web.NewHandler(&web.HandlerConfig{
		SearchService: searchService,
		CombatService: combatService,
		DiceService:   diceService,
		PanelService:  panelService,
		DiceShortcut:  cfg.Dice.Shortcut,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create web handler: %w", err)
	}

	uiHandler, err := uiv1.NewHandler(&uiv1.HandlerConfig{
		SearchService: searchService,
		CombatService: combatService,
		DiceService:   diceService,
		PanelService:  panelService,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create UI handler: %w", err)
	}

	return webHandler, uiHandler, nil
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
