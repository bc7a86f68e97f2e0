package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quotevault/quotevault/internal/common"
	"github.com/quotevault/quotevault/internal/entity"
	"github.com/quotevault/quotevault/internal/extract"
	"github.com/quotevault/quotevault/internal/repository"
	"github.com/quotevault/quotevault/internal/storage"
)

// Sequencer runs one ingestion pass over a selected batch: extract,
// upload, record, one file at a time in selection order. Files are
// never processed concurrently, which keeps the progress percentage
// monotonic.
type Sequencer struct {
	router   *extract.Router
	store    storage.ObjectStorage
	records  repository.RecordRepository
	progress *Tracker
	prefix   string
	logger   *slog.Logger
	now      func() time.Time

	mu   sync.RWMutex
	view []entity.QuotationRecord
}

func NewSequencer(
	router *extract.Router,
	store storage.ObjectStorage,
	records repository.RecordRepository,
	progress *Tracker,
	prefix string,
	logger *slog.Logger,
) *Sequencer {
	if progress == nil {
		progress = NewTracker()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sequencer{
		router:   router,
		store:    store,
		records:  records,
		progress: progress,
		prefix:   prefix,
		logger:   logger,
		now:      time.Now,
	}
}

// Progress exposes the tracker the presentation layer polls.
func (s *Sequencer) Progress() *Tracker {
	return s.progress
}

// Run ingests the batch. It never returns an error: every per-file
// failure is converted to display state, and one file's failure never
// stops the rest of the batch.
func (s *Sequencer) Run(ctx context.Context, batch entity.UploadBatch) {
	if len(batch) == 0 {
		return
	}
	runID := uuid.New().String()
	log := s.logger.With("run_id", runID, "files", len(batch))
	log.Info("sequencer.run.start")

	n := len(batch)
	for i, f := range batch {
		s.progress.SetStep("Extracting text: " + f.Name)
		text, xerr := s.router.Extract(ctx, f)

		var extractionErr string
		if xerr != nil {
			reason := common.ExtractionReason(xerr)
			extractionErr = reason
			text = ""
			s.progress.Fail(fmt.Sprintf("Extraction failed: %s: %s", f.Name, reason))
			log.Error("sequencer.extract.failed", "filename", f.Name, "error", xerr)
		}

		s.progress.SetStep("Uploading: " + f.Name)
		if err := s.uploadAndRecord(ctx, f, text, extractionErr); err != nil {
			s.progress.Fail(fmt.Sprintf("Upload failed: %s: %s", f.Name, err.Error()))
			log.Error("sequencer.upload.failed", "filename", f.Name, "error", err)
		} else {
			log.Info("sequencer.file.ok", "filename", f.Name, "index", i+1)
		}

		s.progress.SetPercent(int(math.Round(100 * float64(i+1) / float64(n))))
	}

	s.progress.Reset()
	if err := s.Refresh(ctx); err != nil {
		log.Error("sequencer.refresh.failed", "error", err)
	}
	log.Info("sequencer.run.done")
}

// uploadAndRecord stores the original bytes, resolves the download
// URL and persists the metadata record. A record is written only when
// the upload succeeded; the storage write and the record write are two
// independent calls with no atomicity between them, so a stored file
// without a record is possible and tolerated.
func (s *Sequencer) uploadAndRecord(ctx context.Context, f entity.File, text, extractionErr string) error {
	uploadedAt := s.now()
	key := fmt.Sprintf("%s/%s_%d", s.prefix, f.Name, uploadedAt.UnixMilli())

	obj, err := s.store.Put(ctx, key, f.Content, f.MediaType)
	if err != nil {
		return err
	}
	fileURL, err := s.store.ResolveURL(ctx, obj)
	if err != nil {
		return err
	}

	rec := entity.QuotationRecord{
		FileURL:              fileURL,
		Filename:             f.Name,
		MediaType:            f.MediaType,
		UploadedAt:           entity.FormatUploadedAt(uploadedAt),
		ExtractedTextSummary: entity.Summarize(text),
		ExtractionError:      extractionErr,
	}
	if _, err := s.records.Insert(ctx, rec); err != nil {
		return err
	}
	return nil
}

// Refresh replaces the cached display projection with a full re-fetch,
// sorted most-recent first. The view is never patched incrementally.
func (s *Sequencer) Refresh(ctx context.Context) error {
	recs, err := s.records.ListAll(ctx)
	if err != nil {
		return err
	}
	repository.SortByUploadedAtDesc(recs)

	s.mu.Lock()
	s.view = recs
	s.mu.Unlock()
	return nil
}

// Records returns a copy of the cached display projection.
func (s *Sequencer) Records() []entity.QuotationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.QuotationRecord, len(s.view))
	copy(out, s.view)
	return out
}
