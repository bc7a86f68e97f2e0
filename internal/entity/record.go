package entity

import (
	"time"
	"unicode/utf8"

	"github.com/quotevault/quotevault/constants"
)

// UploadedAtLayout formats upload timestamps as millisecond-precision
// ISO-8601 in UTC. The fixed offset keeps the strings lexicographically
// sortable, which is what the display sort relies on.
const UploadedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// File is one user-selected input: declared name and media type plus
// the raw bytes. LastModified is carried for display only.
type File struct {
	Name         string
	MediaType    string
	Content      []byte
	LastModified time.Time
}

// UploadBatch is the ordered selection consumed by one ingestion run.
// It is immutable once handed to the sequencer.
type UploadBatch []File

// QuotationRecord is the persisted metadata entry for one ingested
// file. Records are written once and never mutated; the display list
// is always a full re-fetch.
type QuotationRecord struct {
	ID                   string `firestore:"-" json:"id,omitempty"`
	FileURL              string `firestore:"fileUrl" json:"fileUrl"`
	Filename             string `firestore:"filename" json:"filename"`
	MediaType            string `firestore:"mediaType" json:"mediaType"`
	UploadedAt           string `firestore:"uploadedAt" json:"uploadedAt"`
	ExtractedTextSummary string `firestore:"extractedTextSummary" json:"extractedTextSummary"`
	ExtractionError      string `firestore:"extractionError,omitempty" json:"extractionError,omitempty"`
}

// Summarize truncates extracted text to the stored summary length.
// Counts runes, not bytes, so a multi-byte character is never split.
func Summarize(text string) string {
	if utf8.RuneCountInString(text) <= constants.SummaryMaxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:constants.SummaryMaxChars])
}

// FormatUploadedAt renders a timestamp in the stored sort-key layout.
func FormatUploadedAt(t time.Time) string {
	return t.UTC().Format(UploadedAtLayout)
}
