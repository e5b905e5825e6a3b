package mocks

import (
	"context"
	"strings"

	"github.com/arkline/payhook/pkg/firestore"
	"github.com/stretchr/testify/mock"
)

type FirestoreClient struct {
	mock.Mock

	ProjectID string
}

func (m *FirestoreClient) DocumentName(segments ...string) string {
	project := m.ProjectID
	if project == "" {
		project = "test-project"
	}
	return "projects/" + project + "/databases/(default)/documents/" + strings.Join(segments, "/")
}

func (m *FirestoreClient) GetDocument(ctx context.Context, name string, mask []string) (*firestore.Document, error) {
	args := m.Called(ctx, name, mask)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*firestore.Document), args.Error(1)
}

func (m *FirestoreClient) CreateDocument(ctx context.Context, parent, collectionID, documentID string, doc *firestore.Document) (*firestore.Document, error) {
	args := m.Called(ctx, parent, collectionID, documentID, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*firestore.Document), args.Error(1)
}

func (m *FirestoreClient) UpdateDocument(ctx context.Context, doc *firestore.Document, updateMask []string) (*firestore.Document, error) {
	args := m.Called(ctx, doc, updateMask)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*firestore.Document), args.Error(1)
}
