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

	cacheadapter "github.com/guardline/guardline-core/internal/adapters/cache"
	httpadapter "github.com/guardline/guardline-core/internal/adapters/http"
	mongoadapter "github.com/guardline/guardline-core/internal/adapters/mongo"
	"github.com/guardline/guardline-core/internal/adapters/postgres"
	"github.com/guardline/guardline-core/internal/adapters/security"
	"github.com/guardline/guardline-core/internal/application"
	"github.com/guardline/guardline-core/internal/lockout"
	"github.com/guardline/guardline-core/internal/obs"
	"github.com/guardline/guardline-core/internal/session"
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
	logger.Info("bootstrapping guardline security core", "http_port", cfg.HTTPPort, "grpc_port", cfg.GRPCPort)

	obs.Init()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := pool.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql db: %w", err)
	}

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	redisClient, err := cacheadapter.Connect(ctx, cfg.RedisURL)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	mongoClient, err := mongoadapter.Connect(ctx, cfg.MongoURI)
	if err != nil {
		_ = sqlDB.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	attempts := cacheadapter.NewRedisAttemptStore(redisClient)
	sessions := cacheadapter.NewRedisSessionStore(redisClient)
	twoFactor := cacheadapter.NewRedisTwoFactorStore(redisClient)

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			SessionTTL:          cfg.SessionTTL,
			AttachmentAllowList: cfg.AttachmentAllowList,
		},
		Tracker:       lockout.NewTracker(attempts, cfg.MaxLoginAttempts, cfg.LockoutDuration),
		Sessions:      session.NewManager(sessions, cfg.SessionTTL),
		Identity:      postgres.NewIdentityRepository(pool, security.NewBcryptHasher(cfg.BcryptCost)),
		Reports:       mongoadapter.NewReportStore(mongoClient, cfg.MongoDatabase),
		LoginAttempts: postgres.NewLoginAttemptRepository(pool),
		TwoFactor:     twoFactor,
		SecondFactor:  security.NewTOTPProvider(cfg.TOTPIssuer),
	})

	handler := httpadapter.NewHandler(svc, cfg.AgencyAPIKey)
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
		_ = sqlDB.Close()
		_ = redisClient.Close()
		_ = mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("listen gRPC: %w", err)
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		cleanupFn: func(ctx context.Context) {
			_ = redisClient.Close()
			_ = sqlDB.Close()
			_ = mongoClient.Disconnect(ctx)
		},
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
