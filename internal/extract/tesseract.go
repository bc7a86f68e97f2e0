package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/quotevault/quotevault/internal/entity"
)

// TesseractConfig configures the subprocess-based OCR engine.
type TesseractConfig struct {
	Binary      string // binary name or absolute path; if empty -> "tesseract"
	TessdataDir string
}

// TesseractEngine runs the tesseract CLI on image bytes staged to a
// temp file. Implements OCREngine.
type TesseractEngine struct {
	cfg    TesseractConfig
	runner Runner
	logger *slog.Logger
}

func NewTesseractEngine(cfg TesseractConfig, logger *slog.Logger) *TesseractEngine {
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TesseractEngine{cfg: cfg, runner: execRunner{}, logger: logger}
}

var reBoxNoise = regexp.MustCompile(`(?m)^\s*[_\-]{3,}\s*$`)

// Recognize stages the image to disk and runs
// tesseract <file> stdout -l <lang>.
func (e *TesseractEngine) Recognize(ctx context.Context, f entity.File, lang string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "qv-ocr-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	in := filepath.Join(tmpDir, "page"+imageExt(f.Name))
	if err := os.WriteFile(in, f.Content, 0o600); err != nil {
		return "", fmt.Errorf("stage image: %w", err)
	}

	args := []string{in, "stdout", "-l", lang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	out, errb, err := e.runner.Run(ctx, e.cfg.Binary, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			return "", fmt.Errorf("tesseract: %s", firstLine(msg))
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}

	// strip obvious box/line noise before handing the text back
	txt := reBoxNoise.ReplaceAllString(string(out), "")
	return strings.TrimSpace(txt), nil
}

func imageExt(name string) string {
	if ext := filepath.Ext(name); ext != "" {
		return ext
	}
	return ".png"
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
