package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	HeaderTrackID = "X-Track-Id"
	LocalTrackID  = "track_id"
)

// TrackID assigns every request a track id, preferring one supplied by the
// caller, and echoes it on the response.
func TrackID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderTrackID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(LocalTrackID, id)
		c.Set(HeaderTrackID, id)

		return c.Next()
	}
}
