package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// ErrInvalidInput marks configuration and request validation failures.
var ErrInvalidInput = errors.New("invalid input")

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// TimeoutReason is the uniform user-facing reason for a timed-out
// extraction attempt, whatever the underlying operation was.
const TimeoutReason = "Extraction timed out"

// ExtractionFallbackReason is shown when an extraction failure carries
// no usable reason of its own.
const ExtractionFallbackReason = "Extraction failed"

// ExtractionError is a recoverable per-file failure of the text
// extraction step. It is recorded on the persisted record and never
// blocks the upload of the original file.
type ExtractionError struct {
	Reason string
	Cause  error
}

func (e *ExtractionError) Error() string {
	return e.Reason
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// NewExtractionError wraps cause into an ExtractionError. The reason
// becomes the user-visible failure string.
func NewExtractionError(reason string, cause error) *ExtractionError {
	return &ExtractionError{Reason: reason, Cause: cause}
}

// NewTimeoutError marks an extraction attempt that lost the race
// against its deadline.
func NewTimeoutError() *ExtractionError {
	return &ExtractionError{Reason: TimeoutReason}
}

// IsTimeout reports whether err is a timed-out extraction.
func IsTimeout(err error) bool {
	var xerr *ExtractionError
	return errors.As(err, &xerr) && xerr.Reason == TimeoutReason
}

// ExtractionReason reduces any extraction failure to its display
// string, falling back to a generic message when none is available.
func ExtractionReason(err error) string {
	if err == nil {
		return ""
	}
	var xerr *ExtractionError
	if errors.As(err, &xerr) && xerr.Reason != "" {
		return xerr.Reason
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return ExtractionFallbackReason
}

// StorageError is a failed object-storage write or URL resolution.
// The affected file is skipped; the batch continues.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// PersistenceError is a failed record write to the document database.
// Like StorageError it skips the file without aborting the batch.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
