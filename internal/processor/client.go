// Package processor talks to the remote PDF-processing and emissions API.
package processor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"carbonfront/internal/config"
	"carbonfront/internal/csvexport"
	"carbonfront/internal/domain"
	"carbonfront/internal/metrics"
)

// Response headers carrying bulk counters.
const (
	HeaderProcessedCount = "x-processed-count"
	HeaderFailedCount    = "failed-count"
	HeaderTotalFiles     = "total-files"
)

// Client implements port.ProcessingClient over HTTP multipart uploads.
type Client struct {
	baseURL   string
	singleURL string
	bulkURL   string
	client    *http.Client
	logger    *zap.Logger
	now       func() time.Time
}

// NewClient creates a processing client from config. A zero timeout leaves
// requests unbounded.
func NewClient(cfg *config.ProcessorConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		singleURL: cfg.SingleURL(),
		bulkURL:   cfg.BulkURL(),
		client:    &http.Client{Timeout: cfg.Timeout()},
		logger:    logger.Named("processor"),
		now:       time.Now,
	}
}

// ProcessSingle posts a PDF and returns the raw response body.
func (c *Client) ProcessSingle(ctx context.Context, sub domain.Submission) ([]byte, error) {
	resp, err := c.post(ctx, "single", c.singleURL, sub)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", domain.ErrUpstreamUnavailable)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newUpstreamError(resp, body)
	}
	return body, nil
}

// ProcessBulk posts a ZIP archive and passes the response body through as a
// downloadable file. The body is never inspected.
func (c *Client) ProcessBulk(ctx context.Context, sub domain.Submission) (*domain.BulkResult, error) {
	resp, err := c.post(ctx, "bulk", c.bulkURL, sub)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", domain.ErrUpstreamUnavailable)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newUpstreamError(resp, body)
	}

	now := c.now()
	filename := FilenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if filename == "" {
		filename = csvexport.BulkFallbackFilename(now)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &domain.BulkResult{
		Filename:    filename,
		ContentType: contentType,
		Body:        body,
		Stats: domain.BulkStats{
			Processed: ParseCountHeader(resp.Header.Get(HeaderProcessedCount)),
			Failed:    ParseCountHeader(resp.Header.Get(HeaderFailedCount)),
			Total:     ParseCountHeader(resp.Header.Get(HeaderTotalFiles)),
		},
		ReceivedAt: now,
	}, nil
}

// Ping issues a GET against the base URL. Any HTTP answer counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *Client) post(ctx context.Context, flow, url string, sub domain.Submission) (*http.Response, error) {
	body, contentType, err := buildMultipart(sub)
	if err != nil {
		return nil, fmt.Errorf("building request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json, */*")

	c.logger.Debug("posting submission",
		zap.String("flow", flow),
		zap.String("url", url),
		zap.String("file", sub.Filename),
		zap.Int64("size", sub.Size),
		zap.String("methodology", string(sub.Methodology)),
	)

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.UpstreamDuration.WithLabelValues(flow).Observe(time.Since(start).Seconds())
	if err != nil {
		c.logger.Warn("processing service call failed", zap.String("flow", flow), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	c.logger.Debug("processing service answered",
		zap.String("flow", flow),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// buildMultipart encodes the file and methodology fields, keeping the
// declared media type of the file part.
func buildMultipart(sub domain.Submission) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(sub.Filename)))
	ct := sub.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if sub.Body != nil {
		if _, err := io.Copy(part, sub.Body); err != nil {
			return nil, "", fmt.Errorf("copying file: %w", err)
		}
	}
	if err := w.WriteField("methodology", string(sub.Methodology)); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
