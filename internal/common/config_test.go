package common

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	if cfg.GCP.Collection != "quotations" {
		t.Fatalf("unexpected default collection: %q", cfg.GCP.Collection)
	}
	if cfg.Upload.Prefix != "quotation_files" {
		t.Fatalf("unexpected default upload prefix: %q", cfg.Upload.Prefix)
	}
	if cfg.Extract.Timeout != 10*time.Second {
		t.Fatalf("unexpected default extract timeout: %v", cfg.Extract.Timeout)
	}
	if cfg.Extract.Tesseract != "tesseract" {
		t.Fatalf("unexpected default tesseract binary: %q", cfg.Extract.Tesseract)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PROJECT_ID", "demo-project")
	t.Setenv("GCS_BUCKET", "demo-bucket")
	t.Setenv("FIRESTORE_COLLECTION", "quotes")
	t.Setenv("EXTRACT_TIMEOUT", "2s")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")

	cfg := LoadConfig()
	if cfg.GCP.ProjectID != "demo-project" {
		t.Fatalf("project id not read from env: %q", cfg.GCP.ProjectID)
	}
	if cfg.GCP.Collection != "quotes" {
		t.Fatalf("collection not read from env: %q", cfg.GCP.Collection)
	}
	if cfg.Extract.Timeout != 2*time.Second {
		t.Fatalf("timeout not read from env: %v", cfg.Extract.Timeout)
	}
	if cfg.Server.MaxUploadBytes != 1<<20 {
		t.Fatalf("max upload bytes not read from env: %d", cfg.Server.MaxUploadBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config with project and bucket should validate: %v", err)
	}
}

func TestValidateRequiresBackends(t *testing.T) {
	cfg := &Config{}
	cfg.Server.HTTPAddr = ":8080"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error without PROJECT_ID")
	}
	cfg.GCP.ProjectID = "p"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error without GCS_BUCKET")
	}
	cfg.GCP.Bucket = "b"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
