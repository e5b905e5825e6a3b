package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/arkline/payhook/internal/metrics"
	"github.com/arkline/payhook/pkg/firestore"
)

const (
	transactCollection = "transact"

	FieldCurrency   = "Currency"
	FieldCost       = "Cost"
	FieldQuantity   = "Quantity"
	FieldRefundDate = "RefundDate"
	FieldRefundCode = "RefundCode"
)

var (
	ErrTransactionNotFound = errors.New("TRANSACTION_NOT_FOUND")
	ErrTransactionExists   = errors.New("TRANSACTION_EXISTED")
)

// TransactionRecord is the document created for a processed payment.
type TransactionRecord struct {
	Currency string
	Cost     int64
	Quantity int64
}

// TransactionRepository manages transaction documents at
// users/{user}/transact/{id}. The document id is the provider transaction id,
// which makes it the idempotency key for payment deliveries.
type TransactionRepository interface {
	Find(ctx context.Context, userID string, transactionID int64) (*firestore.Document, error)
	Create(ctx context.Context, userID string, transactionID int64, rec TransactionRecord) error
	// MarkRefunded merges RefundDate and RefundCode into doc and writes it
	// back, masked to those two fields.
	MarkRefunded(ctx context.Context, doc *firestore.Document, code int64, at time.Time) error
}

type transaction struct {
	client  firestore.Client
	metrics *metrics.Metrics
}

func NewTransactionRepository(client firestore.Client, m *metrics.Metrics) TransactionRepository {
	return &transaction{client: client, metrics: m}
}

func (r *transaction) Find(ctx context.Context, userID string, transactionID int64) (*firestore.Document, error) {
	name := r.client.DocumentName(usersCollection, userID, transactCollection, formatID(transactionID))

	start := time.Now()
	doc, err := r.client.GetDocument(ctx, name, nil)
	r.metrics.RecordStoreRequest("get", "transact", statusLabel(err), time.Since(start))

	if errors.Is(err, firestore.ErrNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *transaction) Create(ctx context.Context, userID string, transactionID int64, rec TransactionRecord) error {
	doc := &firestore.Document{}
	doc.SetField(FieldCurrency, firestore.String(rec.Currency))
	doc.SetField(FieldCost, firestore.Integer(rec.Cost))
	doc.SetField(FieldQuantity, firestore.Integer(rec.Quantity))

	parent := r.client.DocumentName(usersCollection, userID)

	start := time.Now()
	_, err := r.client.CreateDocument(ctx, parent, transactCollection, formatID(transactionID), doc)
	r.metrics.RecordStoreRequest("create", "transact", statusLabel(err), time.Since(start))

	if errors.Is(err, firestore.ErrAlreadyExists) {
		return ErrTransactionExists
	}
	return err
}

func (r *transaction) MarkRefunded(ctx context.Context, doc *firestore.Document, code int64, at time.Time) error {
	doc.SetField(FieldRefundDate, firestore.Timestamp(at))
	doc.SetField(FieldRefundCode, firestore.Integer(code))

	start := time.Now()
	_, err := r.client.UpdateDocument(ctx, doc, []string{FieldRefundDate, FieldRefundCode})
	r.metrics.RecordStoreRequest("update", "transact", statusLabel(err), time.Since(start))
	return err
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
