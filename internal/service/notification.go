package service

import (
	"context"
	"errors"
	"time"

	"github.com/arkline/payhook/internal/constants"
	"github.com/arkline/payhook/internal/metrics"
	"github.com/arkline/payhook/internal/repository"
	"go.uber.org/zap"
)

// NotificationService runs the credit-update protocol for each notification
// variant. All durable state lives in the document store; the service only
// coordinates the reads and masked writes.
type NotificationService interface {
	ValidateUser(ctx context.Context, cmd ValidateUserCommand) error
	ProcessPayment(ctx context.Context, cmd PaymentCommand) error
	ProcessRefund(ctx context.Context, cmd RefundCommand) error
}

type notification struct {
	users   repository.UserRepository
	txs     repository.TransactionRepository
	locks   *keyedMutex
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewNotificationService(users repository.UserRepository, txs repository.TransactionRepository, logger *zap.Logger, m *metrics.Metrics) NotificationService {
	return &notification{
		users:   users,
		txs:     txs,
		locks:   newKeyedMutex(),
		logger:  logger,
		metrics: m,
	}
}

func (s *notification) ValidateUser(ctx context.Context, cmd ValidateUserCommand) error {
	if err := s.users.Find(ctx, cmd.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("User validation failed", zap.String("user_id", cmd.UserID))
			return NewServiceError(constants.ErrCodeInvalidUser, err)
		}

		s.logger.Error("User lookup failed", zap.String("user_id", cmd.UserID), zap.Error(err))
		return NewServiceError(constants.ErrCodeStoreFailure, err)
	}

	s.logger.Info("User validated", zap.String("user_id", cmd.UserID))
	return nil
}

func (s *notification) ProcessPayment(ctx context.Context, cmd PaymentCommand) error {
	unlock := s.locks.Lock(cmd.UserID)
	defer unlock()

	userDoc, err := s.users.FindCredits(ctx, cmd.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("Payment for unknown user", zap.String("user_id", cmd.UserID))
			return NewServiceError(constants.ErrCodeInvalidUser, err)
		}

		s.logger.Error("User lookup failed", zap.String("user_id", cmd.UserID), zap.Error(err))
		return NewServiceError(constants.ErrCodeStoreFailure, err)
	}

	_, err = s.txs.Find(ctx, cmd.UserID, cmd.TransactionID)
	if err == nil {
		s.logger.Info("Transaction already processed",
			zap.String("user_id", cmd.UserID),
			zap.Int64("transaction_id", cmd.TransactionID))
		return nil
	}
	if !errors.Is(err, repository.ErrTransactionNotFound) {
		s.logger.Error("Transaction lookup failed",
			zap.String("user_id", cmd.UserID),
			zap.Int64("transaction_id", cmd.TransactionID),
			zap.Error(err))
		return NewServiceError(constants.ErrCodeStoreFailure, err)
	}

	rec := repository.TransactionRecord{
		Currency: cmd.Currency,
		Cost:     cmd.Amount,
		Quantity: cmd.Quantity,
	}
	if err := s.txs.Create(ctx, cmd.UserID, cmd.TransactionID, rec); err != nil {
		// ErrTransactionExists here means a concurrent delivery won the
		// create; that delivery owns the credit update.
		s.logger.Error("Transaction create failed",
			zap.String("user_id", cmd.UserID),
			zap.Int64("transaction_id", cmd.TransactionID),
			zap.Error(err))
		return NewServiceError(constants.ErrCodeStoreFailure, err)
	}

	userDoc.AddInt(repository.FieldCredits, cmd.Quantity)

	if err := s.users.SaveCredits(ctx, userDoc); err != nil {
		// The transaction document is already recorded at this point, so a
		// replay of the same id short-circuits above without ever applying
		// the credit. Surfaced as a 500 for the provider to alert on.
		s.logger.Error("Credits update failed",
			zap.String("user_id", cmd.UserID),
			zap.Int64("transaction_id", cmd.TransactionID),
			zap.Error(err))
		return NewServiceError(constants.ErrCodeStoreFailure, err)
	}

	s.metrics.RecordCreditsApplied("credit", cmd.Quantity)

	s.logger.Info("Payment credited",
		zap.String("user_id", cmd.UserID),
		zap.Int64("transaction_id", cmd.TransactionID),
		zap.Int64("quantity", cmd.Quantity),
		zap.String("currency", cmd.Currency))

	return nil
}

func (s *notification) ProcessRefund(ctx context.Context, cmd RefundCommand) error {
	unlock := s.locks.Lock(cmd.UserID)
	defer unlock()

	userDoc, err := s.users.FindCredits(ctx, cmd.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("Refund for unknown user", zap.String("user_id", cmd.UserID))
			return NewServiceError(constants.ErrCodeInvalidUser, err)
		}

		s.logger.Error("User lookup failed", zap.String("user_id", cmd.UserID), zap.Error(err))
		return NewServiceError(constants.ErrCodeStoreFailure, err)
	}

	txDoc, err := s.txs.Find(ctx, cmd.UserID, cmd.TransactionID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			s.logger.Warn("Refund for unknown transaction",
				zap.String("user_id", cmd.UserID),
				zap.Int64("transaction_id", cmd.TransactionID))
			return NewServiceError(constants.ErrCodeIncorrectInvoice, err)
		}

		s.logger.Error("Transaction lookup failed",
			zap.String("user_id", cmd.UserID),
			zap.Int64("transaction_id", cmd.TransactionID),
			zap.Error(err))
		return NewServiceError(constants.ErrCodeStoreFailure, err)
	}

	if err := s.txs.MarkRefunded(ctx, txDoc, cmd.RefundCode, time.Now()); err != nil {
		s.logger.Error("Refund stamp failed",
			zap.String("user_id", cmd.UserID),
			zap.Int64("transaction_id", cmd.TransactionID),
			zap.Error(err))
		return NewServiceError(constants.ErrCodeStoreFailure, err)
	}

	// Refunds are not deduplicated: a replayed refund for the same
	// transaction id debits the credits again.
	userDoc.AddInt(repository.FieldCredits, -cmd.Quantity)

	if err := s.users.SaveCredits(ctx, userDoc); err != nil {
		s.logger.Error("Credits update failed",
			zap.String("user_id", cmd.UserID),
			zap.Int64("transaction_id", cmd.TransactionID),
			zap.Error(err))
		return NewServiceError(constants.ErrCodeStoreFailure, err)
	}

	s.metrics.RecordCreditsApplied("debit", cmd.Quantity)

	s.logger.Info("Refund applied",
		zap.String("user_id", cmd.UserID),
		zap.Int64("transaction_id", cmd.TransactionID),
		zap.Int64("quantity", cmd.Quantity),
		zap.Int64("refund_code", cmd.RefundCode))

	return nil
}
