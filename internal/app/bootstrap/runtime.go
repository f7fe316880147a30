package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	cacheadapter "github.com/netscan/netscan-api/internal/adapters/cache"
	httpadapter "github.com/netscan/netscan-api/internal/adapters/http"
	"github.com/netscan/netscan-api/internal/adapters/memory"
	"github.com/netscan/netscan-api/internal/adapters/postgres"
	"github.com/netscan/netscan-api/internal/adapters/security"
	"github.com/netscan/netscan-api/internal/application"
	"github.com/netscan/netscan-api/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	logger.Info("bootstrapping netscan api",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"storage_backend", cfg.StorageBackend,
	)

	cleanups := make([]func(), 0, 2)
	cleanup := func(context.Context) {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	fail := func(err error) (*Runtime, error) {
		cleanup(ctx)
		return nil, err
	}

	var (
		users   ports.UserRepository
		history ports.HistoryRepository
	)
	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
		if err != nil {
			return fail(fmt.Errorf("connect postgres: %w", err))
		}
		sqlDB, err := pool.DB()
		if err != nil {
			return fail(fmt.Errorf("gorm sql db: %w", err))
		}
		cleanups = append(cleanups, func() { _ = sqlDB.Close() })

		if err := postgres.RunMigrations(ctx, pool); err != nil {
			return fail(fmt.Errorf("run migrations: %w", err))
		}
		repos := postgres.NewRepositories(pool)
		users = repos.Users
		history = repos.History
	default:
		users = memory.NewUserStore()
		history = memory.NewHistoryStore()
	}

	var lockouts ports.LockoutStore
	if cfg.RedisURL != "" {
		redisClient, err := cacheadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fail(fmt.Errorf("init redis client: %w", err))
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fail(fmt.Errorf("connect redis: %w", err))
		}
		cleanups = append(cleanups, func() { _ = redisClient.Close() })
		lockouts = cacheadapter.NewRedisLockoutStore(redisClient)
	} else {
		logger.Warn("no redis configured, lockout state is in-process only")
		lockouts = memory.NewLockoutStore()
	}

	tokenSigner, err := security.NewJWTSigner(cfg.JWTKeyID, cfg.JWTPrivateKeyPEM, cfg.JWTPublicKeyPEM)
	if err != nil {
		if !cfg.AllowEphemeralJWT {
			return fail(fmt.Errorf("init jwt signer: %w", err))
		}
		logger.Warn("using ephemeral JWT keys for local/dev runtime")
		tokenSigner, err = security.NewEphemeralJWTSigner(cfg.JWTKeyID)
		if err != nil {
			return fail(fmt.Errorf("init ephemeral jwt signer: %w", err))
		}
	}

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			TokenTTL:             cfg.TokenTTL,
			HistoryCap:           cfg.HistoryCap,
			DefaultPageSize:      cfg.DefaultPageSize,
			MaxPageSize:          cfg.MaxPageSize,
			FailedLoginThreshold: cfg.FailedThreshold,
			LockoutDuration:      cfg.LockoutDuration,
		},
		Users:    users,
		History:  history,
		Lockouts: lockouts,
		Hasher:   security.NewBcryptHasher(cfg.BcryptCost),
		Signer:   tokenSigner,
	})

	handler := httpadapter.NewHandler(svc)
	router := httpadapter.NewRouter(handler)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fail(fmt.Errorf("listen gRPC: %w", err))
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		cleanupFn:  cleanup,
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		r.logger.Info("grpc server started", "addr", r.grpcLis.Addr().String())
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		r.logger.Error("server failure", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}
