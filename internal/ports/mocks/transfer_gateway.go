package mocks

import (
	"context"

	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/bnema/altoro-cli/internal/ports"
	"github.com/stretchr/testify/mock"
)

type MockTransferGateway struct {
	mock.Mock
}

var _ ports.TransferGateway = (*MockTransferGateway)(nil)

func NewMockTransferGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransferGateway {
	m := &MockTransferGateway{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransferGateway) SubmitTransfer(ctx context.Context, session domain.Session, form domain.TransferForm) (domain.TransferResponse, error) {
	args := m.Called(ctx, session, form)
	return args.Get(0).(domain.TransferResponse), args.Error(1)
}
