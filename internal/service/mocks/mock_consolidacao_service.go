package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rondasapi/internal/model"
	"rondasapi/internal/service"
)

type MockConsolidacaoService struct {
	mock.Mock
}

func (m *MockConsolidacaoService) result(args mock.Arguments) (*service.ConsolidacaoResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConsolidacaoResult), args.Error(1)
}

func (m *MockConsolidacaoService) Consolidar(ctx context.Context, condominioID int64, data model.Date) (*service.ConsolidacaoResult, error) {
	return m.result(m.Called(ctx, condominioID, data))
}

func (m *MockConsolidacaoService) ConsolidarEEnviar(ctx context.Context, condominioID int64, data model.Date) (*service.ConsolidacaoResult, error) {
	return m.result(m.Called(ctx, condominioID, data))
}

func (m *MockConsolidacaoService) MarcarProcessadas(ctx context.Context, condominioID int64, data model.Date) (int64, error) {
	args := m.Called(ctx, condominioID, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConsolidacaoService) ProcessoCompleto(ctx context.Context, condominioID int64, data model.Date) (*service.ProcessoCompletoResult, error) {
	args := m.Called(ctx, condominioID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProcessoCompletoResult), args.Error(1)
}

func (m *MockConsolidacaoService) Status(ctx context.Context, condominioID int64, data model.Date) (*service.StatusConsolidacao, error) {
	args := m.Called(ctx, condominioID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StatusConsolidacao), args.Error(1)
}
