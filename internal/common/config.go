package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	GCP     GCPConfig
	Server  ServerConfig
	Extract ExtractConfig
	Upload  UploadConfig
}

// GCPConfig holds the Google Cloud backends the pipeline talks to.
type GCPConfig struct {
	ProjectID  string
	Collection string
	Bucket     string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
}

// ExtractConfig holds text-extraction configuration
type ExtractConfig struct {
	Timeout     time.Duration
	Tesseract   string
	TessdataDir string
}

// UploadConfig holds object-storage upload configuration
type UploadConfig struct {
	Prefix string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		GCP: GCPConfig{
			ProjectID:  getEnv("PROJECT_ID", ""),
			Collection: getEnv("FIRESTORE_COLLECTION", "quotations"),
			Bucket:     getEnv("GCS_BUCKET", ""),
		},
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxUploadBytes:  getEnvAsInt64("MAX_UPLOAD_BYTES", 32<<20),
		},
		Extract: ExtractConfig{
			Timeout:     getEnvAsDuration("EXTRACT_TIMEOUT", 10*time.Second),
			Tesseract:   getEnv("TESSERACT", "tesseract"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
		},
		Upload: UploadConfig{
			Prefix: getEnv("UPLOAD_PREFIX", "quotation_files"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks that required settings for the cloud backends are present.
func (c *Config) Validate() error {
	if c.GCP.ProjectID == "" {
		return NewAppError("CONFIG_ERROR", "PROJECT_ID is required", ErrInvalidInput)
	}
	if c.GCP.Bucket == "" {
		return NewAppError("CONFIG_ERROR", "GCS_BUCKET is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}
