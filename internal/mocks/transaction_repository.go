package mocks

import (
	"context"
	"time"

	"github.com/arkline/payhook/internal/repository"
	"github.com/arkline/payhook/pkg/firestore"
	"github.com/stretchr/testify/mock"
)

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Find(ctx context.Context, userID string, transactionID int64) (*firestore.Document, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*firestore.Document), args.Error(1)
}

func (m *TransactionRepository) Create(ctx context.Context, userID string, transactionID int64, rec repository.TransactionRecord) error {
	args := m.Called(ctx, userID, transactionID, rec)
	return args.Error(0)
}

func (m *TransactionRepository) MarkRefunded(ctx context.Context, doc *firestore.Document, code int64, at time.Time) error {
	args := m.Called(ctx, doc, code, at)
	return args.Error(0)
}
