package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carbonfront/internal/domain"
)

// MockProcessingClient is a mock implementation of port.ProcessingClient.
type MockProcessingClient struct {
	mock.Mock
}

func (m *MockProcessingClient) ProcessSingle(ctx context.Context, sub domain.Submission) ([]byte, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockProcessingClient) ProcessBulk(ctx context.Context, sub domain.Submission) (*domain.BulkResult, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkResult), args.Error(1)
}

func (m *MockProcessingClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
