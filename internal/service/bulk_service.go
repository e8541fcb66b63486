package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"carbonfront/internal/config"
	"carbonfront/internal/domain"
	"carbonfront/internal/metrics"
	"carbonfront/internal/port"
)

// BulkService defines the archive submission contract.
type BulkService interface {
	Process(ctx context.Context, input UploadInput) (*domain.BulkResult, error)
}

type bulkService struct {
	client port.ProcessingClient
	cfg    *config.UploadConfig
	logger *zap.Logger
}

// NewBulkService creates a new BulkService implementation.
func NewBulkService(client port.ProcessingClient, cfg *config.UploadConfig, logger *zap.Logger) BulkService {
	return &bulkService{
		client: client,
		cfg:    cfg,
		logger: logger.Named("bulk"),
	}
}

func (s *bulkService) Process(ctx context.Context, input UploadInput) (*domain.BulkResult, error) {
	methodology, err := domain.ParseMethodology(input.Methodology)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("bulk", metrics.OutcomeValidation).Inc()
		return nil, err
	}
	if err := ValidateZIP(input, s.cfg.MaxZIPBytes()); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("bulk", metrics.OutcomeValidation).Inc()
		return nil, err
	}

	contentType := mediaType(input.ContentType)
	if contentType == "" {
		contentType = domain.ContentTypeZIP
	}

	s.logger.Info("processing archive",
		zap.String("file", input.Filename),
		zap.String("size", domain.FormatFileSize(input.Size)),
		zap.String("methodology", string(methodology)),
	)

	result, err := s.client.ProcessBulk(ctx, domain.Submission{
		Filename:    input.Filename,
		ContentType: contentType,
		Size:        input.Size,
		Body:        input.File,
		Methodology: methodology,
	})
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("bulk", metrics.OutcomeUpstream).Inc()
		s.logger.Warn("processing service call failed", zap.String("file", input.Filename), zap.Error(err))
		return nil, fmt.Errorf("processing %s: %w", input.Filename, err)
	}

	metrics.SubmissionsTotal.WithLabelValues("bulk", metrics.OutcomeSuccess).Inc()
	s.logger.Info("archive processed",
		zap.String("file", input.Filename),
		zap.String("result", result.Filename),
		zap.Int("processed", result.Stats.Processed),
		zap.Int("failed", result.Stats.Failed),
		zap.Int("total", result.Stats.Total),
	)
	return result, nil
}
