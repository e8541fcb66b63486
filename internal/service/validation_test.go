package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"carbonfront/internal/domain"
	"carbonfront/internal/service"
)

const mb = 1024 * 1024

func TestValidatePDF(t *testing.T) {
	body := strings.NewReader("%PDF")
	tests := []struct {
		name    string
		input   service.UploadInput
		wantErr error
	}{
		{"valid", service.UploadInput{Filename: "a.pdf", ContentType: "application/pdf", Size: 10, File: body}, nil},
		{"content type with params", service.UploadInput{Filename: "a.pdf", ContentType: "application/pdf; name=a.pdf", Size: 10, File: body}, nil},
		{"no file", service.UploadInput{}, domain.ErrNoFileSelected},
		{"wrong type", service.UploadInput{Filename: "a.png", ContentType: "image/png", Size: 10, File: body}, domain.ErrInvalidPDF},
		{"pdf name but no type", service.UploadInput{Filename: "a.pdf", Size: 10, File: body}, domain.ErrInvalidPDF},
		{"exactly at limit", service.UploadInput{Filename: "a.pdf", ContentType: "application/pdf", Size: 50 * mb, File: body}, nil},
		{"too large", service.UploadInput{Filename: "a.pdf", ContentType: "application/pdf", Size: 50*mb + 1, File: body}, domain.ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePDF(tt.input, 50*mb)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidatePDF_SizeMessage(t *testing.T) {
	err := service.ValidatePDF(service.UploadInput{
		ContentType: "application/pdf",
		Size:        60 * mb,
		File:        strings.NewReader(""),
	}, 50*mb)

	var sizeErr *domain.SizeLimitError
	assert.True(t, errors.As(err, &sizeErr))
	assert.Equal(t, "file size should be less than 50MB", err.Error())
}

func TestValidateZIP(t *testing.T) {
	body := strings.NewReader("PK")
	tests := []struct {
		name    string
		input   service.UploadInput
		wantErr error
	}{
		{"declared zip", service.UploadInput{Filename: "batch", ContentType: "application/zip", Size: 10, File: body}, nil},
		{"zip suffix", service.UploadInput{Filename: "batch.zip", ContentType: "application/octet-stream", Size: 10, File: body}, nil},
		{"upper-case suffix", service.UploadInput{Filename: "BATCH.ZIP", Size: 10, File: body}, nil},
		{"no file", service.UploadInput{}, domain.ErrNoFileSelected},
		{"not zip", service.UploadInput{Filename: "a.pdf", ContentType: "application/pdf", Size: 10, File: body}, domain.ErrInvalidZIP},
		{"too large", service.UploadInput{Filename: "a.zip", Size: 100*mb + 1, File: body}, domain.ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidateZIP(tt.input, 100*mb)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
