package domain

import (
	"errors"
	"fmt"
)

// Validation errors. Submission is never attempted when one of these occurs.
var (
	ErrNoFileSelected     = errors.New("no file selected")
	ErrInvalidPDF         = errors.New("please select a valid PDF file")
	ErrInvalidZIP         = errors.New("please select a valid ZIP file")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrInvalidMethodology = errors.New("methodology must be one of: spend, activity")
)

// Upstream transport errors.
var ErrUpstreamUnavailable = errors.New("processing service unreachable")

// Response shape errors.
var (
	ErrNoEmissionCalculations = errors.New("no emission calculations found in the response")
	ErrTextInsteadOfJSON      = errors.New("received text data instead of structured JSON; please check API response format")
	ErrInvalidResponseFormat  = errors.New("invalid response format from server")
	ErrNoDataReturned         = errors.New("no data returned from server")
	ErrNoColumnsFound         = errors.New("no columns found in the returned data")
)

// Curation and export errors.
var (
	ErrNoColumnsSelected       = errors.New("please select at least one column")
	ErrNoData                  = errors.New("no data available to download")
	ErrUnknownColumn           = errors.New("unknown column")
	ErrUnsupportedExportFormat = errors.New("unsupported export format; allowed: csv, xlsx")
)

// Session errors.
var (
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrSessionNotFound    = errors.New("session not found")
)

// UpstreamError is returned when the processing service answers with a
// non-success status. Message carries the server-provided text when present.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("processing service error (status %d): %s", e.StatusCode, e.Message)
}

// SizeLimitError reports an upload above the configured limit. It matches
// ErrFileTooLarge under errors.Is.
type SizeLimitError struct {
	Size  int64
	Limit int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("file size should be less than %dMB", e.Limit/(1024*1024))
}

func (e *SizeLimitError) Is(target error) bool {
	return target == ErrFileTooLarge
}
