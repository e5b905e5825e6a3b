package mocks

import (
	"context"

	"github.com/arkline/payhook/pkg/firestore"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Find(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UserRepository) FindCredits(ctx context.Context, userID string) (*firestore.Document, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*firestore.Document), args.Error(1)
}

func (m *UserRepository) SaveCredits(ctx context.Context, doc *firestore.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
