package main

import (
	"context"

	"github.com/arkline/payhook/internal/api"
	v1 "github.com/arkline/payhook/internal/api/v1"
	"github.com/arkline/payhook/internal/api/v1/middleware"
	"github.com/arkline/payhook/internal/api/validator"
	"github.com/arkline/payhook/internal/config"
	"github.com/arkline/payhook/internal/errors"
	"github.com/arkline/payhook/internal/metrics"
	"github.com/arkline/payhook/internal/repository"
	"github.com/arkline/payhook/internal/service"
	"github.com/arkline/payhook/pkg/firestore"
	"github.com/arkline/payhook/pkg/httpclient"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			prometheus.NewRegistry,
			metrics.NewMetrics,
			newHTTPClient,
			newFirestoreClient,
			repository.NewUserRepository,
			repository.NewTransactionRepository,
			service.NewNotificationService,
			validator.NewNotificationValidator,
			middleware.NewChain,
			v1.NewHandler,
			newFiberApp,
		),
		fx.Invoke(startServer),
	).Run()
}

func newFiberApp(logger *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler:          errors.ErrorHandler(logger),
		StreamRequestBody:     true,
		DisableStartupMessage: true,
	})
}

func newHTTPClient(cfg *config.Config) httpclient.HTTPClient {
	return httpclient.NewHTTPClient(cfg.Firestore.Timeout)
}

func newFirestoreClient(cfg *config.Config, client httpclient.HTTPClient) firestore.Client {
	return firestore.NewClient(cfg.Firestore, client)
}

func startServer(app *fiber.App, handler *v1.Handler, chain middleware.Chain, m *metrics.Metrics,
	registry *prometheus.Registry, cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, chain, m, registry, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting webhook gateway", zap.String("port", cfg.API.Port))
			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Fatal("Server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}
