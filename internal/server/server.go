// Package server exposes the ingestion pipeline over HTTP: multipart
// upload in, record listing and XLSX export out.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/quotevault/quotevault/internal/common"
	"github.com/quotevault/quotevault/internal/export"
	"github.com/quotevault/quotevault/internal/ingest"
)

type Server struct {
	cfg      common.ServerConfig
	seq      *ingest.Sequencer
	exporter *export.Service
	logger   *slog.Logger
	echo     *echo.Echo
}

func New(cfg common.ServerConfig, seq *ingest.Sequencer, exporter *export.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{cfg: cfg, seq: seq, exporter: exporter, logger: logger}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = s.errorHandler

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	api := e.Group("/api")
	api.POST("/quotations", s.handleUpload)
	api.GET("/quotations", s.handleList)
	api.GET("/quotations/progress", s.handleProgress)
	api.GET("/quotations/export", s.handleExport)

	s.echo = e
	return s
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving HTTP until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(s.cfg.HTTPAddr)
	}()
	s.logger.Info("server.listening", "addr", s.cfg.HTTPAddr)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// errorHandler renders every error as structured JSON and logs it once.
func (s *Server) errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := err.Error()
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
	}
	req := c.Request()
	s.logger.Error("server.request.failed",
		"status", code,
		"method", req.Method,
		"path", req.URL.Path,
		"error", err,
	)
	if !c.Response().Committed {
		_ = c.JSON(code, map[string]any{"error": msg})
	}
}
