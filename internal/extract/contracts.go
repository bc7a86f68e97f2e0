package extract

import (
	"context"

	"github.com/quotevault/quotevault/internal/entity"
)

// OCREngine recognizes text in an image file.
type OCREngine interface {
	Recognize(ctx context.Context, f entity.File, lang string) (string, error)
}

// WordConverter turns Word-document bytes into plain text.
type WordConverter interface {
	ExtractRawText(ctx context.Context, data []byte) (string, error)
}
