package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/quotevault/quotevault/internal/common"
)

// GCSStorage stores uploads in a Google Cloud Storage bucket.
type GCSStorage struct {
	client *gcs.Client
	bucket string
	logger *slog.Logger
}

func NewGCSStorage(client *gcs.Client, bucket string, logger *slog.Logger) *GCSStorage {
	if logger == nil {
		logger = slog.Default()
	}
	return &GCSStorage{client: client, bucket: bucket, logger: logger}
}

func (s *GCSStorage) Put(ctx context.Context, key string, data []byte, contentType string) (StoredObject, error) {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		s.logger.Error("storage.put.failed", "bucket", s.bucket, "key", key, "error", err)
		return StoredObject{}, &common.StorageError{Op: "write object", Cause: gcsCause(err)}
	}
	if err := w.Close(); err != nil {
		s.logger.Error("storage.put.failed", "bucket", s.bucket, "key", key, "error", err)
		return StoredObject{}, &common.StorageError{Op: "finalize object", Cause: gcsCause(err)}
	}

	s.logger.Debug("storage.put.ok", "bucket", s.bucket, "key", key, "bytes", len(data))
	return StoredObject{Bucket: s.bucket, Key: key}, nil
}

// ResolveURL returns the public download URL form for the object.
func (s *GCSStorage) ResolveURL(_ context.Context, obj StoredObject) (string, error) {
	if obj.Bucket == "" || obj.Key == "" {
		return "", &common.StorageError{Op: "resolve url", Cause: errors.New("empty object reference")}
	}
	// Escape each path segment but keep the separators readable.
	segments := strings.Split(obj.Key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", obj.Bucket, strings.Join(segments, "/")), nil
}

// gcsCause surfaces the API error code when Google returns one.
func gcsCause(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return fmt.Errorf("gcs responded %d: %s", gerr.Code, gerr.Message)
	}
	return err
}
