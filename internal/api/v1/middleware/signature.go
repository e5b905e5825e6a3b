package middleware

import (
	"bytes"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"io"

	"github.com/arkline/payhook/internal/api/contract"
	"github.com/arkline/payhook/internal/constants"
	"github.com/arkline/payhook/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Header layout: "Bearer " (7 chars) followed by 40 hex chars of SHA-1.
const (
	schemeLen    = 7
	digestHexLen = 2 * sha1.Size
)

// VerifySignature checks that the Authorization header carries the SHA-1
// digest of the request body with the shared secret appended. The body is
// streamed through the hasher while being buffered, and the buffered bytes
// replace the request body for downstream handlers.
func VerifySignature(secret []byte, logger *zap.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		signature, ok := extractSignature(c.Get(fiber.HeaderAuthorization))
		if !ok {
			logger.Warn("Malformed or missing signature header")
			return rejectSignature(c, m)
		}

		body := c.Context().RequestBodyStream()
		if body == nil {
			body = bytes.NewReader(c.Body())
		}

		var buf bytes.Buffer
		hasher := sha1.New()
		if _, err := io.Copy(io.MultiWriter(hasher, &buf), body); err != nil {
			logger.Error("Reading request body failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).Send(nil)
		}
		hasher.Write(secret)

		if subtle.ConstantTimeCompare(signature, hasher.Sum(nil)) != 1 {
			logger.Warn("Signature mismatch")
			return rejectSignature(c, m)
		}

		// Hand the buffered body to the next stage; the stream is spent.
		c.Request().SetBodyRaw(buf.Bytes())

		return c.Next()
	}
}

func extractSignature(header string) ([]byte, bool) {
	if len(header) < schemeLen+digestHexLen {
		return nil, false
	}

	decoded, err := hex.DecodeString(header[schemeLen : schemeLen+digestHexLen])
	if err != nil {
		return nil, false
	}
	return decoded, true
}

func rejectSignature(c *fiber.Ctx, m *metrics.Metrics) error {
	m.RecordAuthRejection("signature")
	return c.Status(fiber.StatusUnauthorized).JSON(
		contract.NewError(constants.ErrCodeInvalidSignature, constants.GetErrorMessage(constants.ErrCodeInvalidSignature)))
}
