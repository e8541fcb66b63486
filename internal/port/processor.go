package port

import (
	"context"

	"carbonfront/internal/domain"
)

// ProcessingClient abstracts the remote PDF-processing API.
type ProcessingClient interface {
	// ProcessSingle posts one PDF and returns the raw JSON response body.
	ProcessSingle(ctx context.Context, sub domain.Submission) ([]byte, error)
	// ProcessBulk posts a ZIP archive and returns the file it answers with.
	ProcessBulk(ctx context.Context, sub domain.Submission) (*domain.BulkResult, error)
	// Ping reports whether the service answers HTTP at all.
	Ping(ctx context.Context) error
}
