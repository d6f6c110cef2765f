package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hustle-village/internal/api/http"
	"github.com/spec-kit/hustle-village/internal/api/http/handlers"
	"github.com/spec-kit/hustle-village/internal/auth"
	"github.com/spec-kit/hustle-village/internal/config"
	"github.com/spec-kit/hustle-village/internal/events"
	"github.com/spec-kit/hustle-village/internal/identity"
	"github.com/spec-kit/hustle-village/internal/observability"
	"github.com/spec-kit/hustle-village/internal/persistence"
	"github.com/spec-kit/hustle-village/internal/repository"
	"github.com/spec-kit/hustle-village/internal/service"
	"github.com/spec-kit/hustle-village/internal/storage"
	"github.com/spec-kit/hustle-village/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	requestRepo := repository.NewDeleteRequestRepository(pool)

	codeStore := identity.NewRedisCodeStore(redis.Client)
	provider := identity.NewOTPProvider(codeStore, dispatcher, logger, identity.OTPConfig{
		TTL:        cfg.Auth.SignupCodeTTL(),
		CodeLength: cfg.Auth.SignupCodeLength,
		BcryptCost: cfg.Auth.BcryptCost,
	})

	blobs := storage.NewHTTPBlobStore(cfg.Storage)
	images := service.NewImageService(blobs, logger, cfg.Storage.RequireUpload)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Provider:   provider,
		Dispatcher: dispatcher,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		ServiceRepo: serviceRepo,
		UserRepo:    userRepo,
		Images:      images,
		Dispatcher:  dispatcher,
	})
	deletionService := service.NewDeletionService(service.DeletionDependencies{
		RequestRepo: requestRepo,
		ServiceRepo: serviceRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService)
	servicesHandler := handlers.NewServicesHandler(catalogService, deletionService)
	adminHandler := handlers.NewAdminHandler(deletionService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           authHandler,
		Services:       servicesHandler,
		Admin:          adminHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
