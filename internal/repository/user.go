package repository

import (
	"context"
	"errors"
	"time"

	"github.com/arkline/payhook/internal/metrics"
	"github.com/arkline/payhook/pkg/firestore"
)

const (
	usersCollection = "users"

	FieldCredits = "Credits"
)

var ErrUserNotFound = errors.New("USER_NOT_FOUND")

// UserRepository reads and writes user documents at users/{id}.
type UserRepository interface {
	// Find checks that the user document exists.
	Find(ctx context.Context, userID string) error
	// FindCredits fetches the user document restricted to the Credits field.
	FindCredits(ctx context.Context, userID string) (*firestore.Document, error)
	// SaveCredits writes doc back with the update masked to Credits.
	SaveCredits(ctx context.Context, doc *firestore.Document) error
}

type user struct {
	client  firestore.Client
	metrics *metrics.Metrics
}

func NewUserRepository(client firestore.Client, m *metrics.Metrics) UserRepository {
	return &user{client: client, metrics: m}
}

func (r *user) Find(ctx context.Context, userID string) error {
	start := time.Now()
	_, err := r.client.GetDocument(ctx, r.client.DocumentName(usersCollection, userID), nil)
	r.metrics.RecordStoreRequest("get", "users", statusLabel(err), time.Since(start))

	if errors.Is(err, firestore.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (r *user) FindCredits(ctx context.Context, userID string) (*firestore.Document, error) {
	start := time.Now()
	doc, err := r.client.GetDocument(ctx, r.client.DocumentName(usersCollection, userID), []string{FieldCredits})
	r.metrics.RecordStoreRequest("get", "users", statusLabel(err), time.Since(start))

	if errors.Is(err, firestore.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *user) SaveCredits(ctx context.Context, doc *firestore.Document) error {
	start := time.Now()
	_, err := r.client.UpdateDocument(ctx, doc, []string{FieldCredits})
	r.metrics.RecordStoreRequest("update", "users", statusLabel(err), time.Since(start))
	return err
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, firestore.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
