package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rondasapi/internal/model"
	"rondasapi/internal/repository"
)

type MockEsporadicaRepository struct {
	mock.Mock
}

func (m *MockEsporadicaRepository) one(args mock.Arguments, in *model.RondaEsporadica) (*model.RondaEsporadica, error) {
	if f, ok := args.Get(0).(func(*model.RondaEsporadica) *model.RondaEsporadica); ok {
		return f(in), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RondaEsporadica), args.Error(1)
}

func (m *MockEsporadicaRepository) many(args mock.Arguments) ([]model.RondaEsporadica, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RondaEsporadica), args.Error(1)
}

func (m *MockEsporadicaRepository) Create(ctx context.Context, r *model.RondaEsporadica) (*model.RondaEsporadica, error) {
	return m.one(m.Called(ctx, r), r)
}

func (m *MockEsporadicaRepository) Update(ctx context.Context, r *model.RondaEsporadica) (*model.RondaEsporadica, error) {
	return m.one(m.Called(ctx, r), r)
}

func (m *MockEsporadicaRepository) FindByID(ctx context.Context, id int64) (*model.RondaEsporadica, error) {
	return m.one(m.Called(ctx, id), nil)
}

func (m *MockEsporadicaRepository) FindEmAndamento(ctx context.Context, condominioID int64, data model.Date) (*model.RondaEsporadica, error) {
	return m.one(m.Called(ctx, condominioID, data), nil)
}

func (m *MockEsporadicaRepository) ListByDay(ctx context.Context, condominioID int64, data model.Date) ([]model.RondaEsporadica, error) {
	return m.many(m.Called(ctx, condominioID, data))
}

func (m *MockEsporadicaRepository) List(ctx context.Context, f repository.EsporadicaFilter) ([]model.RondaEsporadica, error) {
	return m.many(m.Called(ctx, f))
}

func (m *MockEsporadicaRepository) MarkProcessadas(ctx context.Context, condominioID int64, data model.Date) (int64, error) {
	args := m.Called(ctx, condominioID, data)
	return args.Get(0).(int64), args.Error(1)
}
