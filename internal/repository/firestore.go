package repository

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"

	"github.com/quotevault/quotevault/internal/common"
	"github.com/quotevault/quotevault/internal/entity"
)

// NewFirestoreClient creates a Firestore client for the given project.
func NewFirestoreClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return client, nil
}

type firestoreRecords struct {
	client     *firestore.Client
	collection string
	logger     *slog.Logger
}

// NewFirestoreRecords returns a RecordRepository backed by a Firestore
// collection.
func NewFirestoreRecords(client *firestore.Client, collection string, logger *slog.Logger) RecordRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &firestoreRecords{client: client, collection: collection, logger: logger}
}

func (r *firestoreRecords) Insert(ctx context.Context, rec entity.QuotationRecord) (string, error) {
	if err := entity.ValidateRecord(rec); err != nil {
		r.logger.Error("records.insert.invalid", "filename", rec.Filename, "error", err)
		return "", &common.PersistenceError{Op: "validate record", Cause: err}
	}
	docRef, _, err := r.client.Collection(r.collection).Add(ctx, rec)
	if err != nil {
		r.logger.Error("records.insert.failed", "filename", rec.Filename, "error", err)
		return "", &common.PersistenceError{Op: "insert record", Cause: err}
	}
	r.logger.Debug("records.insert.ok", "doc_id", docRef.ID, "filename", rec.Filename)
	return docRef.ID, nil
}

func (r *firestoreRecords) ListAll(ctx context.Context) ([]entity.QuotationRecord, error) {
	docs, err := r.client.Collection(r.collection).Documents(ctx).GetAll()
	if err != nil {
		r.logger.Error("records.list.failed", "collection", r.collection, "error", err)
		return nil, &common.PersistenceError{Op: "list records", Cause: err}
	}
	out := make([]entity.QuotationRecord, 0, len(docs))
	for _, doc := range docs {
		var rec entity.QuotationRecord
		if err := doc.DataTo(&rec); err != nil {
			r.logger.Error("records.list.decode_failed", "doc_id", doc.Ref.ID, "error", err)
			continue
		}
		rec.ID = doc.Ref.ID
		out = append(out, rec)
	}
	return out, nil
}
