package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/quotevault/quotevault/internal/repository"
)

// Service is a tiny façade over the record repository that produces an
// XLSX rendering of the uploaded-files table.
type Service struct {
	records repository.RecordRepository
	logger  *slog.Logger
}

func NewService(records repository.RecordRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{records: records, logger: logger}
}

// ExportRecordsXLSX returns an XLSX workbook (as bytes) listing every
// record, most recent upload first.
func (s *Service) ExportRecordsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	recs, err := s.records.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	repository.SortByUploadedAtDesc(recs)

	f := excelize.NewFile()
	const sheet = "Quotations"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Uploaded At",
		"Filename",
		"Media Type",
		"Extracted Text",
		"Extraction Error",
		"File URL",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.UploadedAt)
		write(2, r.Filename)
		write(3, r.MediaType)
		write(4, truncate(r.ExtractedTextSummary, 140))
		write(5, r.ExtractionError)
		write(6, r.FileURL)
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 26) // timestamp
	_ = f.SetColWidth(sheet, "B", "B", 32) // filename
	_ = f.SetColWidth(sheet, "C", "C", 40) // media type
	_ = f.SetColWidth(sheet, "D", "D", 60) // text
	_ = f.SetColWidth(sheet, "E", "E", 32) // error
	_ = f.SetColWidth(sheet, "F", "F", 60) // url

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
