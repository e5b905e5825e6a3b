package mocks

import (
	"context"

	"github.com/arkline/payhook/internal/service"
	"github.com/stretchr/testify/mock"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) ValidateUser(ctx context.Context, cmd service.ValidateUserCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *NotificationService) ProcessPayment(ctx context.Context, cmd service.PaymentCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *NotificationService) ProcessRefund(ctx context.Context, cmd service.RefundCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
