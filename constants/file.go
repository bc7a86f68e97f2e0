package constants

import "strings"

// Format identifies which extraction strategy handles a file.
type Format string

const (
	IMAGE       Format = "IMAGE"
	PDF         Format = "PDF"
	WORD        Format = "WORD"
	TEXT        Format = "TEXT"
	UNSUPPORTED Format = "UNSUPPORTED"
)

// Canonical media types with an exact-match dispatch rule.
const (
	PDFMediaType  = "application/pdf"
	WordMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Literals returned for the two strategies that never run an engine.
const (
	PDFPlaceholder         = "[PDF text extraction coming soon]"
	UnsupportedPlaceholder = "[Unsupported file type]"
)

// SummaryMaxChars caps the extracted-text summary stored on a record.
const SummaryMaxChars = 600

// OCRLanguage is the fixed recognition language for image OCR.
const OCRLanguage = "eng"

// ClassifyMediaType maps a declared MIME type to a Format.
// Rules are checked in priority order: image prefix, exact PDF, exact
// Word, text prefix, then unsupported.
func ClassifyMediaType(mediaType string) Format {
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return IMAGE
	case mediaType == PDFMediaType:
		return PDF
	case mediaType == WordMediaType:
		return WORD
	case strings.HasPrefix(mediaType, "text/"):
		return TEXT
	default:
		return UNSUPPORTED
	}
}
