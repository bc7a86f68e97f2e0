package extract

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/quotevault/quotevault/constants"
	"github.com/quotevault/quotevault/internal/common"
	"github.com/quotevault/quotevault/internal/entity"
)

// DefaultTimeout bounds each extraction attempt.
const DefaultTimeout = 10 * time.Second

// Router dispatches a file to an extraction strategy based on its
// declared media type.
type Router struct {
	ocr     OCREngine
	words   WordConverter
	timeout time.Duration
	logger  *slog.Logger
}

// NewRouter builds a Router. A non-positive timeout falls back to
// DefaultTimeout.
func NewRouter(ocr OCREngine, words WordConverter, timeout time.Duration, logger *slog.Logger) *Router {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{ocr: ocr, words: words, timeout: timeout, logger: logger}
}

// Extract returns the best-effort plain text for f, or an
// ExtractionError describing why no text could be derived.
//
// Images run OCR, Word documents run the converter, and text files are
// decoded in place; each of those races the timeout. The PDF and
// unsupported branches return their placeholder immediately and never
// fail, so one unimplemented format cannot stall a batch.
func (r *Router) Extract(ctx context.Context, f entity.File) (string, error) {
	start := time.Now()
	format := constants.ClassifyMediaType(f.MediaType)
	r.logger.Debug("extract.start", "filename", f.Name, "media_type", f.MediaType, "format", format)

	var (
		text string
		err  error
	)
	switch format {
	case constants.IMAGE:
		text, err = raceTimeout(ctx, r.timeout, func(ctx context.Context) (string, error) {
			return r.ocr.Recognize(ctx, f, constants.OCRLanguage)
		})
	case constants.PDF:
		return constants.PDFPlaceholder, nil
	case constants.WORD:
		text, err = raceTimeout(ctx, r.timeout, func(ctx context.Context) (string, error) {
			return r.words.ExtractRawText(ctx, f.Content)
		})
	case constants.TEXT:
		text, err = raceTimeout(ctx, r.timeout, func(ctx context.Context) (string, error) {
			return decodeText(f.Content)
		})
	default:
		return constants.UnsupportedPlaceholder, nil
	}

	if err != nil {
		err = asExtractionError(err)
		r.logger.Error("extract.failed",
			"filename", f.Name,
			"format", format,
			"elapsed_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return "", err
	}

	r.logger.Debug("extract.ok",
		"filename", f.Name,
		"format", format,
		"chars", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

// decodeText interprets raw bytes as UTF-8 text.
func decodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("file is not valid UTF-8 text")
	}
	return string(data), nil
}

// asExtractionError normalizes any engine failure into the extraction
// error taxonomy without double-wrapping.
func asExtractionError(err error) error {
	var xerr *common.ExtractionError
	if errors.As(err, &xerr) {
		return xerr
	}
	return common.NewExtractionError(err.Error(), err)
}
