package errors

import (
	"errors"

	"github.com/arkline/payhook/internal/api/contract"
	"github.com/arkline/payhook/internal/constants"
	"github.com/arkline/payhook/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Codes without a mapping are reported as an opaque 500 with an empty body.
var statusMap = map[string]int{
	constants.ErrCodeInvalidUser:      fiber.StatusBadRequest,
	constants.ErrCodeIncorrectInvoice: fiber.StatusBadRequest,
	constants.ErrCodeInvalidSignature: fiber.StatusUnauthorized,
}

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).Send(nil)
		}

		logger.Error("Unhandled error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).Send(nil)
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	status, ok := statusMap[err.Code]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).Send(nil)
	}

	return c.Status(status).JSON(contract.NewError(err.Code, constants.GetErrorMessage(err.Code)))
}
