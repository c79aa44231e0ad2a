// Package mocks holds testify mocks of the ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zolbooo/ebarimt/internal/domain"
)

type PosAPI struct {
	mock.Mock
}

func (m *PosAPI) CheckAPI(ctx context.Context) (domain.CheckAPIResult, error) {
	args := m.Called(ctx)

	return args.Get(0).(domain.CheckAPIResult), args.Error(1)
}

func (m *PosAPI) SendData(ctx context.Context) (domain.SendDataResult, error) {
	args := m.Called(ctx)

	return args.Get(0).(domain.SendDataResult), args.Error(1)
}

func (m *PosAPI) GetInformation(ctx context.Context) (domain.PosInformation, error) {
	args := m.Called(ctx)

	return args.Get(0).(domain.PosInformation), args.Error(1)
}

func (m *PosAPI) Put(ctx context.Context, bill domain.BillPayload) (domain.PutResult, error) {
	args := m.Called(ctx, bill)

	return args.Get(0).(domain.PutResult), args.Error(1)
}

func (m *PosAPI) ReturnBill(ctx context.Context, req domain.ReturnBillRequest) (domain.ReturnBillResult, error) {
	args := m.Called(ctx, req)

	return args.Get(0).(domain.ReturnBillResult), args.Error(1)
}

func (m *PosAPI) CallFunction(ctx context.Context, functionName string, data any) (string, error) {
	args := m.Called(ctx, functionName, data)

	return args.String(0), args.Error(1)
}
