package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carbonfront/internal/service"
)

// MockSingleService is a mock implementation of service.SingleService.
type MockSingleService struct {
	mock.Mock
}

func (m *MockSingleService) Process(ctx context.Context, input service.UploadInput) (*service.SingleResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SingleResult), args.Error(1)
}
