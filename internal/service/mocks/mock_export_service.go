package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rondasapi/internal/service"
)

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Rondas(ctx context.Context, q service.ExportQuery) (*service.ExportResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}
