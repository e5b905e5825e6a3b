package middleware

import (
	"net/netip"

	"github.com/arkline/payhook/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// IPAllowList admits a request only when its source address falls inside one
// of the configured CIDR ranges. An address that cannot be parsed is denied.
func IPAllowList(allowed []netip.Prefix, logger *zap.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		addr, err := netip.ParseAddr(c.IP())
		if err != nil || !contains(allowed, addr.Unmap()) {
			logger.Warn("Request from disallowed address", zap.String("ip", c.IP()))
			m.RecordAuthRejection("ip")
			return c.Status(fiber.StatusUnauthorized).Send(nil)
		}

		return c.Next()
	}
}

func contains(allowed []netip.Prefix, addr netip.Addr) bool {
	for _, prefix := range allowed {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
