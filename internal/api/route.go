package api

import (
	v1 "github.com/arkline/payhook/internal/api/v1"
	"github.com/arkline/payhook/internal/api/v1/middleware"
	"github.com/arkline/payhook/internal/metrics"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler, chain middleware.Chain, m *metrics.Metrics, registry *prometheus.Registry, logger *zap.Logger) {
	app.Use(chain.TrackID)
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))

	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	app.Post("/webhook", chain.AllowList, chain.Signature, handler.Webhook)
}
