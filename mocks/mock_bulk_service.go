package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carbonfront/internal/domain"
	"carbonfront/internal/service"
)

// MockBulkService is a mock implementation of service.BulkService.
type MockBulkService struct {
	mock.Mock
}

func (m *MockBulkService) Process(ctx context.Context, input service.UploadInput) (*domain.BulkResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkResult), args.Error(1)
}
