package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/tickethub/internal/api/http"
	"github.com/spec-kit/tickethub/internal/api/http/handlers"
	"github.com/spec-kit/tickethub/internal/config"
	"github.com/spec-kit/tickethub/internal/observability"
	"github.com/spec-kit/tickethub/internal/persistence"
	"github.com/spec-kit/tickethub/internal/repository"
	"github.com/spec-kit/tickethub/internal/service"
	"github.com/spec-kit/tickethub/internal/session"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	sessionStore := session.NewRedisStore(redis.Client, cfg.Auth.SessionTTL())
	tokens := session.NewTokenManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL())
	gate := session.NewGate(tokens, sessionStore, cfg.Auth.CookieName, cfg.Auth.CookieSecure)

	authService := service.NewAuthService(cfg.Auth, userRepo, resetRepo)
	ticketService := service.NewTicketService(ticketRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:    handlers.NewAuthHandler(authService, gate),
		Tickets: handlers.NewTicketsHandler(ticketService),
		Gate:    gate,
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
