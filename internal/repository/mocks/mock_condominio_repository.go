package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rondasapi/internal/model"
)

type MockCondominioRepository struct {
	mock.Mock
}

func (m *MockCondominioRepository) List(ctx context.Context) ([]model.Condominio, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Condominio), args.Error(1)
}

func (m *MockCondominioRepository) FindByID(ctx context.Context, id int64) (*model.Condominio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Condominio), args.Error(1)
}

func (m *MockCondominioRepository) Create(ctx context.Context, c *model.Condominio) (*model.Condominio, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Condominio), args.Error(1)
}
