package validator

import (
	"fmt"

	"github.com/arkline/payhook/internal/model"
	"github.com/go-playground/validator/v10"
)

// NotificationValidator checks the fields the credit protocol depends on
// before a notification reaches the dispatcher.
type NotificationValidator interface {
	Validate(n *model.Notification) error
}

type notificationValidator struct {
	validator *validator.Validate
}

func NewNotificationValidator() NotificationValidator {
	return &notificationValidator{validator: validator.New()}
}

func (v *notificationValidator) Validate(n *model.Notification) error {
	if err := v.validator.Struct(n.User); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	if n.Type == model.TypeUserValidation {
		return nil
	}

	if err := v.validator.Struct(n.Transaction); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}
	if err := v.validator.Struct(n.Purchase.VirtualCurrency); err != nil {
		return fmt.Errorf("invalid purchase: %w", err)
	}

	return nil
}
