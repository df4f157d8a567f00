package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rondasapi/internal/model"
)

type MockCondominioService struct {
	mock.Mock
}

func (m *MockCondominioService) one(args mock.Arguments) (*model.Condominio, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Condominio), args.Error(1)
}

func (m *MockCondominioService) List(ctx context.Context) ([]model.Condominio, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Condominio), args.Error(1)
}

func (m *MockCondominioService) Get(ctx context.Context, id int64) (*model.Condominio, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockCondominioService) Create(ctx context.Context, nome, endereco string) (*model.Condominio, error) {
	return m.one(m.Called(ctx, nome, endereco))
}

func (m *MockCondominioService) InferFromFilename(ctx context.Context, filename string) (*model.Condominio, error) {
	return m.one(m.Called(ctx, filename))
}
