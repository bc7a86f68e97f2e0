// Package storage abstracts the object-storage backend that keeps the
// original uploaded files.
package storage

import "context"

// StoredObject identifies a stored file within its bucket.
type StoredObject struct {
	Bucket string
	Key    string
}

// ObjectStorage is the write-side contract the ingestion pipeline
// depends on. The backend owns durability; the pipeline performs no
// retries of its own.
type ObjectStorage interface {
	// Put stores data under key and returns a reference to the object.
	Put(ctx context.Context, key string, data []byte, contentType string) (StoredObject, error)

	// ResolveURL returns a retrievable URL for a stored object.
	ResolveURL(ctx context.Context, obj StoredObject) (string, error)
}
