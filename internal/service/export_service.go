package service

import (
	"bytes"
	"time"

	"carbonfront/internal/columns"
	"carbonfront/internal/csvexport"
	"carbonfront/internal/domain"
	"carbonfront/internal/metrics"
	"carbonfront/internal/rowset"
)

// ExportInput carries the curated state to render.
type ExportInput struct {
	Rows        rowset.RowSet
	Registry    *columns.Registry
	Methodology domain.Methodology
	Format      domain.ExportFormat
}

// RenderExport builds the download for the curated row set. The column check
// runs before the data check so an empty selection always reports itself.
func RenderExport(input ExportInput, now time.Time) (*domain.ExportArtifact, error) {
	if input.Registry.IncludedCount() == 0 {
		return nil, domain.ErrNoColumnsSelected
	}
	if len(input.Rows) == 0 {
		return nil, domain.ErrNoData
	}

	var body []byte
	switch input.Format {
	case domain.ExportFormatCSV:
		text, err := csvexport.Export(input.Rows, input.Registry)
		if err != nil {
			return nil, err
		}
		body = []byte(text)
	case domain.ExportFormatXLSX:
		var buf bytes.Buffer
		if err := csvexport.WriteXLSX(&buf, input.Rows, input.Registry); err != nil {
			return nil, err
		}
		body = buf.Bytes()
	default:
		return nil, domain.ErrUnsupportedExportFormat
	}

	metrics.ExportsTotal.WithLabelValues(string(input.Format)).Inc()
	return &domain.ExportArtifact{
		Filename:    csvexport.BuildFilename(input.Methodology, input.Format, now),
		ContentType: domain.ExportContentTypes[input.Format],
		Body:        body,
	}, nil
}
