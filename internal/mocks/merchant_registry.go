package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zolbooo/ebarimt/internal/domain"
)

type MerchantRegistry struct {
	mock.Mock
}

func (m *MerchantRegistry) Lookup(ctx context.Context, regNo string) (*domain.MerchantInfo, error) {
	args := m.Called(ctx, regNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.MerchantInfo), args.Error(1)
}
