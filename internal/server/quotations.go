package server

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/quotevault/quotevault/internal/entity"
	"github.com/quotevault/quotevault/internal/ingest"
)

type uploadResponse struct {
	Progress ingest.Snapshot          `json:"progress"`
	Records  []entity.QuotationRecord `json:"records"`
}

// handleUpload accepts a multipart batch under the "files" field, runs
// one ingestion pass over it and returns the refreshed record list.
// Per-file failures surface in the progress banner, not as an HTTP
// error; the request itself only fails on malformed input.
func (s *Server) handleUpload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form required")
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files selected")
	}

	batch := make(entity.UploadBatch, 0, len(headers))
	for _, fh := range headers {
		if s.cfg.MaxUploadBytes > 0 && fh.Size > s.cfg.MaxUploadBytes {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
				fmt.Sprintf("%s exceeds the %d byte upload limit", fh.Filename, s.cfg.MaxUploadBytes))
		}
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("open %s: %v", fh.Filename, err))
		}
		content, err := io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("read %s: %v", fh.Filename, err))
		}
		batch = append(batch, entity.File{
			Name:      fh.Filename,
			MediaType: declaredMediaType(fh.Header.Get("Content-Type"), fh.Filename),
			Content:   content,
		})
	}

	s.seq.Run(c.Request().Context(), batch)

	return c.JSON(http.StatusOK, uploadResponse{
		Progress: s.seq.Progress().Snapshot(),
		Records:  s.seq.Records(),
	})
}

func (s *Server) handleList(c echo.Context) error {
	return c.JSON(http.StatusOK, s.seq.Records())
}

func (s *Server) handleProgress(c echo.Context) error {
	return c.JSON(http.StatusOK, s.seq.Progress().Snapshot())
}

func (s *Server) handleExport(c echo.Context) error {
	data, err := s.exporter.ExportRecordsXLSX(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="quotations.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// declaredMediaType prefers what the client declared, falling back to
// the filename extension.
func declaredMediaType(declared, filename string) string {
	if declared != "" {
		return declared
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}
