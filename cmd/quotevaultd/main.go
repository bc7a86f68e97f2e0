package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	gcs "cloud.google.com/go/storage"
	"github.com/joho/godotenv"

	"github.com/quotevault/quotevault/internal/common"
	"github.com/quotevault/quotevault/internal/export"
	"github.com/quotevault/quotevault/internal/extract"
	"github.com/quotevault/quotevault/internal/ingest"
	"github.com/quotevault/quotevault/internal/repository"
	"github.com/quotevault/quotevault/internal/server"
	"github.com/quotevault/quotevault/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("daemon.config.invalid", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fsClient, err := repository.NewFirestoreClient(ctx, cfg.GCP.ProjectID)
	if err != nil {
		logger.Error("daemon.firestore.failed", "error", err)
		os.Exit(1)
	}
	defer fsClient.Close()

	gcsClient, err := gcs.NewClient(ctx)
	if err != nil {
		logger.Error("daemon.storage.failed", "error", err)
		os.Exit(1)
	}
	defer gcsClient.Close()

	records := repository.NewFirestoreRecords(fsClient, cfg.GCP.Collection, logger)
	store := storage.NewGCSStorage(gcsClient, cfg.GCP.Bucket, logger)
	router := extract.NewRouter(
		extract.NewTesseractEngine(extract.TesseractConfig{
			Binary:      cfg.Extract.Tesseract,
			TessdataDir: cfg.Extract.TessdataDir,
		}, logger),
		extract.NewDocxConverter(),
		cfg.Extract.Timeout,
		logger,
	)
	seq := ingest.NewSequencer(router, store, records, ingest.NewTracker(), cfg.Upload.Prefix, logger)

	// Prime the display projection before serving.
	if err := seq.Refresh(ctx); err != nil {
		logger.Warn("daemon.initial_refresh.failed", "error", err)
	}

	exporter := export.NewService(records, logger)
	srv := server.New(cfg.Server, seq, exporter, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("daemon.server.failed", "error", err)
		os.Exit(1)
	}
	logger.Info("daemon.stopped")
}
