package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rondasapi/internal/model"
	"rondasapi/internal/plantao"
	"rondasapi/internal/repository"
)

type MockRondaRepository struct {
	mock.Mock
}

func (m *MockRondaRepository) ronda(args mock.Arguments, in *model.Ronda) (*model.Ronda, error) {
	if f, ok := args.Get(0).(func(*model.Ronda) *model.Ronda); ok {
		return f(in), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ronda), args.Error(1)
}

func (m *MockRondaRepository) Create(ctx context.Context, r *model.Ronda) (*model.Ronda, error) {
	return m.ronda(m.Called(ctx, r), r)
}

func (m *MockRondaRepository) Update(ctx context.Context, r *model.Ronda) (*model.Ronda, error) {
	return m.ronda(m.Called(ctx, r), r)
}

func (m *MockRondaRepository) FindByID(ctx context.Context, id int64) (*model.Ronda, error) {
	return m.ronda(m.Called(ctx, id), nil)
}

func (m *MockRondaRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRondaRepository) ListByDay(ctx context.Context, condominioID int64, data model.Date) ([]model.Ronda, error) {
	args := m.Called(ctx, condominioID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Ronda), args.Error(1)
}

func (m *MockRondaRepository) FindEmAndamento(ctx context.Context, condominioID int64, data model.Date) (*model.Ronda, error) {
	return m.ronda(m.Called(ctx, condominioID, data), nil)
}

func (m *MockRondaRepository) FindByPlantao(ctx context.Context, condominioID int64, data model.Date, escala plantao.Escala, tipo model.RondaTipo) (*model.Ronda, error) {
	return m.ronda(m.Called(ctx, condominioID, data, escala, tipo), nil)
}

func (m *MockRondaRepository) Search(ctx context.Context, f repository.RondaFilter, pq repository.PageQuery) (*repository.PageResult[model.Ronda], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Ronda]), args.Error(1)
}

func (m *MockRondaRepository) Totals(ctx context.Context, f repository.RondaFilter) (repository.RondaTotals, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(repository.RondaTotals), args.Error(1)
}
