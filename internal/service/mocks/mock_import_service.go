package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rondasapi/internal/service"
)

type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Processar(ctx context.Context, in service.ProcessarInput) (*service.ProcessarResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProcessarResult), args.Error(1)
}

func (m *MockImportService) ArquivoFixo(ctx context.Context, userID int64) (*service.ArquivoFixo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArquivoFixo), args.Error(1)
}

func (m *MockImportService) RemoverArquivoFixo(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockImportService) UploadProcess(ctx context.Context, in service.UploadInput) (*service.UploadResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}
