package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"carbonfront/internal/columns"
	"carbonfront/internal/config"
	"carbonfront/internal/domain"
	"carbonfront/internal/metrics"
	"carbonfront/internal/port"
	"carbonfront/internal/rowset"
)

// SingleResult is a normalized single-document response ready for curation.
type SingleResult struct {
	Shape    string
	Rows     rowset.RowSet
	Registry *columns.Registry
	Summary  *rowset.Summary
}

// SingleService defines the single-document submission contract.
type SingleService interface {
	Process(ctx context.Context, input UploadInput) (*SingleResult, error)
}

type singleService struct {
	client port.ProcessingClient
	cfg    *config.UploadConfig
	logger *zap.Logger
}

// NewSingleService creates a new SingleService implementation.
func NewSingleService(client port.ProcessingClient, cfg *config.UploadConfig, logger *zap.Logger) SingleService {
	return &singleService{
		client: client,
		cfg:    cfg,
		logger: logger.Named("single"),
	}
}

func (s *singleService) Process(ctx context.Context, input UploadInput) (*SingleResult, error) {
	methodology, err := domain.ParseMethodology(input.Methodology)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("single", metrics.OutcomeValidation).Inc()
		return nil, err
	}
	if err := ValidatePDF(input, s.cfg.MaxPDFBytes()); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("single", metrics.OutcomeValidation).Inc()
		return nil, err
	}

	s.logger.Info("processing document",
		zap.String("file", input.Filename),
		zap.Int64("size", input.Size),
		zap.String("methodology", string(methodology)),
	)

	body, err := s.client.ProcessSingle(ctx, domain.Submission{
		Filename:    input.Filename,
		ContentType: domain.ContentTypePDF,
		Size:        input.Size,
		Body:        input.File,
		Methodology: methodology,
	})
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("single", metrics.OutcomeUpstream).Inc()
		s.logger.Warn("processing service call failed", zap.String("file", input.Filename), zap.Error(err))
		return nil, fmt.Errorf("processing %s: %w", input.Filename, err)
	}

	resp, err := rowset.Classify(body)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("single", metrics.OutcomeShape).Inc()
		return nil, err
	}
	shape := rowset.ShapeName(resp)
	metrics.ResponseShapes.WithLabelValues(shape).Inc()

	rows, err := rowset.Normalize(resp)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("single", metrics.OutcomeShape).Inc()
		s.logger.Warn("unusable response", zap.String("shape", shape), zap.Error(err))
		return nil, err
	}

	result := &SingleResult{
		Shape:    shape,
		Rows:     rows,
		Registry: columns.NewRegistry(rows.Keys()),
	}
	if sum, ok := rowset.Summarize(rows, rowset.EmissionsColumn); ok {
		result.Summary = &sum
	}

	metrics.SubmissionsTotal.WithLabelValues("single", metrics.OutcomeSuccess).Inc()
	s.logger.Info("document processed",
		zap.String("file", input.Filename),
		zap.String("shape", shape),
		zap.Int("rows", len(rows)),
		zap.Int("columns", result.Registry.Len()),
	)
	return result, nil
}
