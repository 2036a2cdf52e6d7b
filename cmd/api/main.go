package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/sharath2004-tech/odoo-sub001/internal/api/http"
	"github.com/sharath2004-tech/odoo-sub001/internal/api/http/handlers"
	"github.com/sharath2004-tech/odoo-sub001/internal/auth"
	"github.com/sharath2004-tech/odoo-sub001/internal/config"
	"github.com/sharath2004-tech/odoo-sub001/internal/events"
	"github.com/sharath2004-tech/odoo-sub001/internal/observability"
	"github.com/sharath2004-tech/odoo-sub001/internal/persistence"
	"github.com/sharath2004-tech/odoo-sub001/internal/repository"
	"github.com/sharath2004-tech/odoo-sub001/internal/worker"
)

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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	dependencies := map[string]handlers.Pinger{"postgres": pg}

	var accounts repository.AccountRepository = repository.NewAccountRepository(pg)
	if ttl := cfg.Auth.AccountCacheTTL(); ttl > 0 {
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		dependencies["redis"] = redis

		accounts = repository.NewCachedAccountRepository(accounts,
			repository.NewRedisAccountCache(redis.Client, ttl), cfg.Auth.LookupTimeout(), logger)
		logger.Info("account cache enabled", zap.Duration("staleness_window", ttl))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens,
		auth.NewResolver(accounts, cfg.Auth.LookupTimeout()),
		logger,
		auth.WithEvents(dispatcher),
		auth.WithRoleDisclosure(cfg.Auth.DiscloseAllowedRoles),
	)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, dependencies),
		Identity:       handlers.NewIdentityHandler(),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
