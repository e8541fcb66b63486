package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbonfront/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Port)
	assert.Equal(t, "http://127.0.0.1:8000/process-single-pdf", cfg.Processor.SingleURL())
	assert.Equal(t, "http://127.0.0.1:8000/bulk_processing", cfg.Processor.BulkURL())
	assert.Equal(t, time.Duration(0), cfg.Processor.Timeout())
	assert.Equal(t, int64(50*1024*1024), cfg.Upload.MaxPDFBytes())
	assert.Equal(t, int64(100*1024*1024), cfg.Upload.MaxZIPBytes())
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CARBONFRONT_PROCESSOR_BASE_URL", "https://proc.example.com/")
	t.Setenv("CARBONFRONT_PROCESSOR_TIMEOUT_SECS", "90")
	t.Setenv("CARBONFRONT_UPLOAD_MAX_PDF_MB", "10")
	t.Setenv("CARBONFRONT_SESSION_TTL", "30m")
	t.Setenv("CARBONFRONT_CORS_ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://proc.example.com/process-single-pdf", cfg.Processor.SingleURL())
	assert.Equal(t, 90*time.Second, cfg.Processor.Timeout())
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxPDFBytes())
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CARBONFRONT_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Port)
}

func TestLoad_ExplicitPortWins(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CARBONFRONT_SERVER_PORT", ":9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoad_InvalidLimits(t *testing.T) {
	t.Setenv("CARBONFRONT_UPLOAD_MAX_ZIP_MB", "0")

	_, err := config.Load()
	assert.Error(t, err)
}
