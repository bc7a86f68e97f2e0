package repository

import (
	"context"
	"sort"

	"github.com/quotevault/quotevault/internal/entity"
)

// RecordRepository is the document-database contract for persisted
// quotation records.
type RecordRepository interface {
	// Insert writes one record and returns its generated document ID.
	Insert(ctx context.Context, rec entity.QuotationRecord) (string, error)

	// ListAll returns every record in the collection, unordered.
	ListAll(ctx context.Context) ([]entity.QuotationRecord, error)
}

// SortByUploadedAtDesc orders records most-recent first. The stored
// uploadedAt strings are fixed-offset ISO-8601, so plain string
// comparison is chronological.
func SortByUploadedAtDesc(recs []entity.QuotationRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].UploadedAt > recs[j].UploadedAt
	})
}
