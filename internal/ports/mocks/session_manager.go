package mocks

import (
	"context"

	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/bnema/altoro-cli/internal/ports"
	"github.com/stretchr/testify/mock"
)

type MockSessionManager struct {
	mock.Mock
}

var _ ports.SessionManager = (*MockSessionManager)(nil)

func NewMockSessionManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionManager {
	m := &MockSessionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionManager) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(domain.LoginResult), args.Error(1)
}

func (m *MockSessionManager) Logout() {
	m.Called()
}
