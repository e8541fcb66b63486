package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbonfront/internal/domain"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{-1, "0 Bytes"},
		{0, "0 Bytes"},
		{500, "500 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1234567, "1.18 MB"},
		{50 * 1024 * 1024, "50 MB"},
		{1 << 30, "1 GB"},
		{5 << 40, "5120 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.FormatFileSize(tt.bytes))
		})
	}
}

func TestParseMethodology(t *testing.T) {
	m, err := domain.ParseMethodology("")
	require.NoError(t, err)
	assert.Equal(t, domain.MethodologySpend, m)

	m, err = domain.ParseMethodology(" Activity ")
	require.NoError(t, err)
	assert.Equal(t, domain.MethodologyActivity, m)

	_, err = domain.ParseMethodology("carbon")
	assert.ErrorIs(t, err, domain.ErrInvalidMethodology)
}

func TestMethodologyLabel(t *testing.T) {
	assert.Equal(t, "Spend", domain.MethodologySpend.Label())
	assert.Equal(t, "Activity", domain.MethodologyActivity.Label())
}

func TestParseExportFormat(t *testing.T) {
	f, err := domain.ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, domain.ExportFormatCSV, f)

	f, err = domain.ParseExportFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, domain.ExportFormatXLSX, f)

	_, err = domain.ParseExportFormat("pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedExportFormat)
}

func TestSizeLimitError(t *testing.T) {
	err := fmt.Errorf("upload: %w", &domain.SizeLimitError{Size: 60 << 20, Limit: 50 << 20})

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	assert.Equal(t, "upload: file size should be less than 50MB", err.Error())
}

func TestUpstreamError(t *testing.T) {
	var err error = &domain.UpstreamError{StatusCode: 422, Message: "Unsupported PDF layout"}

	var upErr *domain.UpstreamError
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &upErr))
	assert.Equal(t, 422, upErr.StatusCode)
	assert.Contains(t, err.Error(), "Unsupported PDF layout")
}

func TestIsZIPName(t *testing.T) {
	assert.True(t, domain.IsZIPName("batch.zip"))
	assert.True(t, domain.IsZIPName("BATCH.ZIP"))
	assert.False(t, domain.IsZIPName("batch.zip.pdf"))
	assert.False(t, domain.IsZIPName("zip"))
}
