package middleware

import (
	"github.com/arkline/payhook/internal/config"
	"github.com/arkline/payhook/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Chain bundles the webhook middleware in processing order: allow-list
// first, then signature verification. TrackID wraps everything.
type Chain struct {
	TrackID   fiber.Handler
	AllowList fiber.Handler
	Signature fiber.Handler
}

func NewChain(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) Chain {
	return Chain{
		TrackID:   TrackID(),
		AllowList: IPAllowList(cfg.Webhook.AllowList(), logger, m),
		Signature: VerifySignature([]byte(cfg.Webhook.SecretKey), logger, m),
	}
}
