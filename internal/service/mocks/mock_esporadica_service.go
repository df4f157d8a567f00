package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rondasapi/internal/model"
	"rondasapi/internal/service"
)

type MockEsporadicaService struct {
	mock.Mock
}

func (m *MockEsporadicaService) one(args mock.Arguments) (*model.RondaEsporadica, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RondaEsporadica), args.Error(1)
}

func (m *MockEsporadicaService) many(args mock.Arguments) ([]model.RondaEsporadica, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RondaEsporadica), args.Error(1)
}

func (m *MockEsporadicaService) Iniciar(ctx context.Context, in service.IniciarEsporadicaInput) (*model.RondaEsporadica, error) {
	return m.one(m.Called(ctx, in))
}

func (m *MockEsporadicaService) Finalizar(ctx context.Context, id int64, in service.FinalizarEsporadicaInput) (*model.RondaEsporadica, error) {
	return m.one(m.Called(ctx, id, in))
}

func (m *MockEsporadicaService) Atualizar(ctx context.Context, id int64, observacoes string) (*model.RondaEsporadica, error) {
	return m.one(m.Called(ctx, id, observacoes))
}

func (m *MockEsporadicaService) EmAndamento(ctx context.Context, condominioID int64, data model.Date) (*model.RondaEsporadica, error) {
	return m.one(m.Called(ctx, condominioID, data))
}

func (m *MockEsporadicaService) DoDia(ctx context.Context, condominioID int64, data model.Date) ([]model.RondaEsporadica, error) {
	return m.many(m.Called(ctx, condominioID, data))
}

func (m *MockEsporadicaService) Get(ctx context.Context, id int64) (*model.RondaEsporadica, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockEsporadicaService) Executadas(ctx context.Context, condominioID *int64, inicio, fim *model.Date) ([]model.RondaEsporadica, error) {
	return m.many(m.Called(ctx, condominioID, inicio, fim))
}

func (m *MockEsporadicaService) Estatisticas(ctx context.Context, condominioID int64, inicio, fim model.Date) (*service.Estatisticas, error) {
	args := m.Called(ctx, condominioID, inicio, fim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Estatisticas), args.Error(1)
}

func (m *MockEsporadicaService) ValidarHorario(horaEntrada string) (*service.ValidacaoHorario, error) {
	args := m.Called(horaEntrada)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ValidacaoHorario), args.Error(1)
}
