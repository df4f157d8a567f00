package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rondasapi/internal/model"
	"rondasapi/internal/service"
)

type MockRondaService struct {
	mock.Mock
}

func (m *MockRondaService) one(args mock.Arguments) (*model.Ronda, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ronda), args.Error(1)
}

func (m *MockRondaService) DoDia(ctx context.Context, condominioID int64, data model.Date) ([]model.Ronda, error) {
	args := m.Called(ctx, condominioID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Ronda), args.Error(1)
}

func (m *MockRondaService) EmAndamento(ctx context.Context, condominioID int64, data model.Date) (*model.Ronda, error) {
	return m.one(m.Called(ctx, condominioID, data))
}

func (m *MockRondaService) Iniciar(ctx context.Context, in service.IniciarRondaInput) (*model.Ronda, error) {
	return m.one(m.Called(ctx, in))
}

func (m *MockRondaService) Finalizar(ctx context.Context, id int64, in service.AtualizarRondaInput) (*model.Ronda, error) {
	return m.one(m.Called(ctx, id, in))
}

func (m *MockRondaService) Atualizar(ctx context.Context, id int64, in service.AtualizarRondaInput) (*model.Ronda, error) {
	return m.one(m.Called(ctx, id, in))
}

func (m *MockRondaService) Salvar(ctx context.Context, in service.SalvarRondaInput) (*model.Ronda, error) {
	return m.one(m.Called(ctx, in))
}

func (m *MockRondaService) Historico(ctx context.Context, q service.HistoricoQuery) (*service.HistoricoResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HistoricoResult), args.Error(1)
}

func (m *MockRondaService) Get(ctx context.Context, id int64) (*model.Ronda, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockRondaService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRondaService) GerarRelatorio(ctx context.Context, condominioID int64, data model.Date) (*service.RelatorioResult, error) {
	args := m.Called(ctx, condominioID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RelatorioResult), args.Error(1)
}

func (m *MockRondaService) EnviarWhatsApp(ctx context.Context, condominioID int64, data model.Date) (*service.EnvioResult, error) {
	args := m.Called(ctx, condominioID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EnvioResult), args.Error(1)
}
