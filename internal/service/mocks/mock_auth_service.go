package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rondasapi/internal/model"
	"rondasapi/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) user(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	return m.user(m.Called(ctx, in))
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	return m.user(m.Called(ctx, token))
}

func (m *MockAuthService) Get(ctx context.Context, id int64) (*model.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockAuthService) Approve(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
