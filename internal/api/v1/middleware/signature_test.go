package middleware_test

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arkline/payhook/internal/api/v1/middleware"
	"github.com/arkline/payhook/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "Ultra1Top2Secret3Key"

func newMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

func signBody(body string) string {
	hasher := sha1.New()
	hasher.Write([]byte(body))
	hasher.Write([]byte(testSecret))
	return "Bearer " + hex.EncodeToString(hasher.Sum(nil))
}

func newSignatureApp(t *testing.T) (*fiber.App, *string) {
	t.Helper()

	app := fiber.New(fiber.Config{StreamRequestBody: true})
	app.Use(middleware.VerifySignature([]byte(testSecret), zap.NewNop(), newMetrics()))

	var seenBody string
	app.Post("/webhook", func(c *fiber.Ctx) error {
		seenBody = string(c.Body())
		return c.SendStatus(fiber.StatusOK)
	})

	return app, &seenBody
}

func TestVerifySignature(t *testing.T) {
	body := `{"notification_type":"user_validation","user":{"id":"42"}}`

	t.Run("valid signature passes the body downstream", func(t *testing.T) {
		app, seenBody := newSignatureApp(t)

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		req.Header.Set("Authorization", signBody(body))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, body, *seenBody)
	})

	t.Run("trailing header bytes beyond the digest are ignored", func(t *testing.T) {
		app, _ := newSignatureApp(t)

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		req.Header.Set("Authorization", signBody(body)+"garbage")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("wrong digest is rejected", func(t *testing.T) {
		app, seenBody := newSignatureApp(t)

		tampered := []byte(signBody(body))
		if tampered[len(tampered)-1] == '0' {
			tampered[len(tampered)-1] = '1'
		} else {
			tampered[len(tampered)-1] = '0'
		}

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		req.Header.Set("Authorization", string(tampered))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Empty(t, *seenBody)

		payload, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":{"code":"INVALID_SIGNATURE","message":"Invalid Signature"}}`, string(payload))
	})

	t.Run("signature over a different body is rejected", func(t *testing.T) {
		app, _ := newSignatureApp(t)

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		req.Header.Set("Authorization", signBody(`{"other":true}`))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		app, _ := newSignatureApp(t)

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("header shorter than scheme plus digest is rejected", func(t *testing.T) {
		app, _ := newSignatureApp(t)

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer abc123")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-hex digest is rejected", func(t *testing.T) {
		app, _ := newSignatureApp(t)

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+strings.Repeat("z", 40))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("empty body signs over the secret alone", func(t *testing.T) {
		app, seenBody := newSignatureApp(t)

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(""))
		req.Header.Set("Authorization", signBody(""))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, *seenBody)
	})
}
