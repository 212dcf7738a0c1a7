package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/tenderdesk/procurement-service/internal/api/http"
	"github.com/tenderdesk/procurement-service/internal/api/http/handlers"
	"github.com/tenderdesk/procurement-service/internal/auth"
	"github.com/tenderdesk/procurement-service/internal/config"
	"github.com/tenderdesk/procurement-service/internal/events"
	"github.com/tenderdesk/procurement-service/internal/observability"
	"github.com/tenderdesk/procurement-service/internal/persistence"
	"github.com/tenderdesk/procurement-service/internal/repository"
	"github.com/tenderdesk/procurement-service/internal/service"
	"github.com/tenderdesk/procurement-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if pool == nil {
		logger.Fatal("POSTGRES_DSN is required")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	userRepo := repository.NewUserRepository(pool)
	itemRepo := repository.NewItemRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(ctx, dispatcher, notificationService, events.NewRedisPublisher(redis.Client, cfg.Redis.EventsChannel, logger))

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:     userRepo,
		TokenManager: tokenManager,
	})
	memberService := service.NewMemberService(service.MemberDependencies{
		UserRepo:   userRepo,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	itemService := service.NewItemService(service.ItemDependencies{
		ItemRepo:   itemRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	adminService := service.NewAdminService(userRepo, cfg.Auth.BcryptCost)
	if created, err := adminService.EnsureAdmin(ctx, cfg.Admin); err != nil {
		logger.Error("failed to seed admin account", zap.Error(err))
	} else if created {
		logger.Info("seeded admin account", zap.String("username", cfg.Admin.Username))
	}

	metrics := observability.NewMetrics()
	app := httptransport.NewApp(cfg.App, logger)
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:      logger,
		Metrics:     metrics,
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.App.CORSAllowOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Auth:   handlers.NewAuthHandler(authService),
		Admin:  handlers.NewAdminHandler(memberService, itemService),
		Member: handlers.NewMemberHandler(memberService, itemService),
		Gate:   auth.NewGate(authService.TokenManager()),
	})

	go func() {
		logger.Info("server is listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
