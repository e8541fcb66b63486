package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Processor ProcessorConfig
	Upload    UploadConfig
	Session   SessionConfig
	Log       LogConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// ProcessorConfig points at the remote processing API.
type ProcessorConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	SinglePath  string `mapstructure:"single_path"`
	BulkPath    string `mapstructure:"bulk_path"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// SingleURL returns the full single-document endpoint.
func (p *ProcessorConfig) SingleURL() string {
	return strings.TrimRight(p.BaseURL, "/") + p.SinglePath
}

// BulkURL returns the full bulk endpoint.
func (p *ProcessorConfig) BulkURL() string {
	return strings.TrimRight(p.BaseURL, "/") + p.BulkPath
}

// Timeout returns the client timeout. Zero means no timeout.
func (p *ProcessorConfig) Timeout() time.Duration {
	if p.TimeoutSecs <= 0 {
		return 0
	}
	return time.Duration(p.TimeoutSecs) * time.Second
}

// UploadConfig holds client-side upload limits.
type UploadConfig struct {
	MaxPDFSizeMB int64 `mapstructure:"max_pdf_mb"`
	MaxZIPSizeMB int64 `mapstructure:"max_zip_mb"`
}

// MaxPDFBytes returns the PDF limit in bytes.
func (u *UploadConfig) MaxPDFBytes() int64 {
	return u.MaxPDFSizeMB * 1024 * 1024
}

// MaxZIPBytes returns the ZIP limit in bytes.
func (u *UploadConfig) MaxZIPBytes() int64 {
	return u.MaxZIPSizeMB * 1024 * 1024
}

// SessionConfig holds page-state session settings.
type SessionConfig struct {
	CookieName    string        `mapstructure:"cookie_name"`
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the CARBONFRONT_
// prefix. A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("CARBONFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":3000")
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.environment", "development")

	// Processor defaults
	v.SetDefault("processor.base_url", "http://127.0.0.1:8000")
	v.SetDefault("processor.single_path", "/process-single-pdf")
	v.SetDefault("processor.bulk_path", "/bulk_processing")
	v.SetDefault("processor.timeout_secs", 0)

	// Upload defaults
	v.SetDefault("upload.max_pdf_mb", 50)
	v.SetDefault("upload.max_zip_mb", 100)

	// Session defaults
	v.SetDefault("session.cookie_name", "carbonfront_session")
	v.SetDefault("session.ttl", "2h")
	v.SetDefault("session.sweep_interval", "5m")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "CARBONFRONT_SERVER_PORT",
		"server.read_timeout":    "CARBONFRONT_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "CARBONFRONT_SERVER_WRITE_TIMEOUT",
		"server.environment":     "CARBONFRONT_SERVER_ENVIRONMENT",
		"processor.base_url":     "CARBONFRONT_PROCESSOR_BASE_URL",
		"processor.single_path":  "CARBONFRONT_PROCESSOR_SINGLE_PATH",
		"processor.bulk_path":    "CARBONFRONT_PROCESSOR_BULK_PATH",
		"processor.timeout_secs": "CARBONFRONT_PROCESSOR_TIMEOUT_SECS",
		"upload.max_pdf_mb":      "CARBONFRONT_UPLOAD_MAX_PDF_MB",
		"upload.max_zip_mb":      "CARBONFRONT_UPLOAD_MAX_ZIP_MB",
		"session.cookie_name":    "CARBONFRONT_SESSION_COOKIE_NAME",
		"session.ttl":            "CARBONFRONT_SESSION_TTL",
		"session.sweep_interval": "CARBONFRONT_SESSION_SWEEP_INTERVAL",
		"log.level":              "CARBONFRONT_LOG_LEVEL",
		"log.format":             "CARBONFRONT_LOG_FORMAT",
		"cors.allowed_origins":   "CARBONFRONT_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set a PORT env var. Use it if CARBONFRONT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CARBONFRONT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Processor = ProcessorConfig{
		BaseURL:     v.GetString("processor.base_url"),
		SinglePath:  v.GetString("processor.single_path"),
		BulkPath:    v.GetString("processor.bulk_path"),
		TimeoutSecs: v.GetInt("processor.timeout_secs"),
	}
	cfg.Upload = UploadConfig{
		MaxPDFSizeMB: v.GetInt64("upload.max_pdf_mb"),
		MaxZIPSizeMB: v.GetInt64("upload.max_zip_mb"),
	}
	cfg.Session = SessionConfig{
		CookieName:    v.GetString("session.cookie_name"),
		TTL:           v.GetDuration("session.ttl"),
		SweepInterval: v.GetDuration("session.sweep_interval"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	if cfg.Processor.BaseURL == "" {
		return nil, fmt.Errorf("processor.base_url must not be empty")
	}
	if cfg.Upload.MaxPDFSizeMB <= 0 || cfg.Upload.MaxZIPSizeMB <= 0 {
		return nil, fmt.Errorf("upload limits must be positive")
	}

	return cfg, nil
}
