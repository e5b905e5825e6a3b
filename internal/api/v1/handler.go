package v1

import (
	"encoding/json"
	"errors"

	"github.com/arkline/payhook/internal/api/validator"
	"github.com/arkline/payhook/internal/metrics"
	"github.com/arkline/payhook/internal/model"
	"github.com/arkline/payhook/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	logger              *zap.Logger
	notificationService service.NotificationService
	validator           validator.NotificationValidator
	metrics             *metrics.Metrics
}

func NewHandler(logger *zap.Logger, notificationService service.NotificationService, validator validator.NotificationValidator, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:              logger,
		notificationService: notificationService,
		validator:           validator,
		metrics:             metrics,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

// Webhook parses a signature-verified notification and dispatches it to the
// matching protocol. The body here is the buffered copy handed over by the
// signature middleware.
func (h *Handler) Webhook(c *fiber.Ctx) error {
	var msg model.Notification
	if err := json.Unmarshal(c.Body(), &msg); err != nil {
		h.logger.Warn("Rejected unparseable notification", zap.Error(err))
		h.metrics.RecordNotification("unknown", "parse_error")
		return c.Status(fiber.StatusBadRequest).Send(nil)
	}

	if err := h.validator.Validate(&msg); err != nil {
		h.logger.Warn("Rejected invalid notification",
			zap.String("type", string(msg.Type)),
			zap.Error(err))
		h.metrics.RecordNotification(string(msg.Type), "validation_error")
		return c.Status(fiber.StatusBadRequest).Send(nil)
	}

	ctx := c.UserContext()

	var err error
	switch msg.Type {
	case model.TypeUserValidation:
		err = h.notificationService.ValidateUser(ctx, service.ValidateUserCommand{
			UserID: msg.User.ID,
		})
	case model.TypePayment:
		err = h.notificationService.ProcessPayment(ctx, service.PaymentCommand{
			UserID:        msg.User.ID,
			TransactionID: msg.Transaction.ID,
			Currency:      msg.Purchase.VirtualCurrency.Currency,
			Amount:        msg.Purchase.VirtualCurrency.Amount,
			Quantity:      msg.Purchase.VirtualCurrency.Quantity,
		})
	case model.TypeRefund:
		err = h.notificationService.ProcessRefund(ctx, service.RefundCommand{
			UserID:        msg.User.ID,
			TransactionID: msg.Transaction.ID,
			Quantity:      msg.Purchase.VirtualCurrency.Quantity,
			RefundCode:    msg.RefundDetails.Code,
		})
	}

	if err != nil {
		h.metrics.RecordNotification(string(msg.Type), outcomeLabel(err))
		return err
	}

	h.metrics.RecordNotification(string(msg.Type), "ok")
	return c.Status(fiber.StatusOK).Send(nil)
}

func outcomeLabel(err error) string {
	var serviceErr service.Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Code
	}
	return "error"
}
