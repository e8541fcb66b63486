package service

import (
	"io"
	"mime"
	"strings"

	"carbonfront/internal/domain"
)

// UploadInput is the DTO for a file submitted from a form, the API or the CLI.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	File        io.Reader
	Methodology string
}

// ValidatePDF checks that the upload declares application/pdf and fits the
// size limit.
func ValidatePDF(input UploadInput, maxBytes int64) error {
	if input.File == nil {
		return domain.ErrNoFileSelected
	}
	if mediaType(input.ContentType) != domain.ContentTypePDF {
		return domain.ErrInvalidPDF
	}
	if input.Size > maxBytes {
		return &domain.SizeLimitError{Size: input.Size, Limit: maxBytes}
	}
	return nil
}

// ValidateZIP checks that the upload declares application/zip or carries a
// .zip suffix, and fits the size limit.
func ValidateZIP(input UploadInput, maxBytes int64) error {
	if input.File == nil {
		return domain.ErrNoFileSelected
	}
	if mediaType(input.ContentType) != domain.ContentTypeZIP && !domain.IsZIPName(input.Filename) {
		return domain.ErrInvalidZIP
	}
	if input.Size > maxBytes {
		return &domain.SizeLimitError{Size: input.Size, Limit: maxBytes}
	}
	return nil
}

// mediaType strips parameters from a declared content type.
func mediaType(ct string) string {
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mt
}
