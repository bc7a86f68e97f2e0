package main

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"text/tabwriter"

	gcs "cloud.google.com/go/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/quotevault/quotevault/constants"
	"github.com/quotevault/quotevault/internal/common"
	"github.com/quotevault/quotevault/internal/entity"
	"github.com/quotevault/quotevault/internal/export"
	"github.com/quotevault/quotevault/internal/extract"
	"github.com/quotevault/quotevault/internal/ingest"
	"github.com/quotevault/quotevault/internal/repository"
	"github.com/quotevault/quotevault/internal/storage"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "quotevault",
		Short: "Upload quotation documents, extract their text and list the records",
	}
	root.AddCommand(ingestCMD(), listCMD(), exportCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// pipeline wires the cloud backends for one CLI invocation.
type pipeline struct {
	seq      *ingest.Sequencer
	exporter *export.Service
	close    func()
}

func buildPipeline(ctx context.Context) (*pipeline, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fsClient, err := repository.NewFirestoreClient(ctx, cfg.GCP.ProjectID)
	if err != nil {
		return nil, err
	}
	gcsClient, err := gcs.NewClient(ctx)
	if err != nil {
		_ = fsClient.Close()
		return nil, err
	}

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

	return &pipeline{
		seq:      seq,
		exporter: export.NewService(records, logger),
		close: func() {
			_ = gcsClient.Close()
			_ = fsClient.Close()
		},
	}, nil
}

func ingestCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Upload one or more documents and record their extracted text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := buildPipeline(ctx)
			if err != nil {
				return err
			}
			defer p.close()

			batch := make(entity.UploadBatch, 0, len(args))
			for _, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				info, err := os.Stat(path)
				if err != nil {
					return fmt.Errorf("stat %s: %w", path, err)
				}
				batch = append(batch, entity.File{
					Name:         filepath.Base(path),
					MediaType:    mediaTypeFor(path),
					Content:      content,
					LastModified: info.ModTime(),
				})
			}

			p.seq.Run(ctx, batch)

			snap := p.seq.Progress().Snapshot()
			if snap.LastError != "" {
				fmt.Fprintln(os.Stderr, snap.LastError)
			}
			fmt.Printf("ingested %d file(s), %d record(s) on file\n", len(batch), len(p.seq.Records()))
			return nil
		},
	}
}

func listCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List uploaded quotation records, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := buildPipeline(ctx)
			if err != nil {
				return err
			}
			defer p.close()

			if err := p.seq.Refresh(ctx); err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "UPLOADED AT\tFILENAME\tMEDIA TYPE\tERROR")
			for _, r := range p.seq.Records() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.UploadedAt, r.Filename, r.MediaType, r.ExtractionError)
			}
			return w.Flush()
		},
	}
}

func exportCMD() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the records table as an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := buildPipeline(ctx)
			if err != nil {
				return err
			}
			defer p.close()

			data, err := p.exporter.ExportRecordsXLSX(ctx)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Printf("wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "quotations.xlsx", "output XLSX file path")
	return cmd
}

func mediaTypeFor(path string) string {
	ext := filepath.Ext(path)
	// The platform mime table does not always know Office types.
	if ext == ".docx" {
		return constants.WordMediaType
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	return "application/octet-stream"
}
