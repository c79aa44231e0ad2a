package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zolbooo/ebarimt/internal/domain"
	"github.com/zolbooo/ebarimt/internal/mocks"
)

func TestLookupMerchant(t *testing.T) {
	t.Parallel()

	registry := &mocks.MerchantRegistry{}
	expected := &domain.MerchantInfo{Name: "Example LLC", VATPayer: true}
	registry.On("Lookup", mock.Anything, "5317878").Return(expected, nil).Once()

	info, err := LookupMerchant(context.Background(), registry, "5317878")

	require.NoError(t, err)
	assert.Equal(t, expected, info)
}

func TestLookupMerchant_NotFound(t *testing.T) {
	t.Parallel()

	registry := &mocks.MerchantRegistry{}
	registry.On("Lookup", mock.Anything, "0000000").Return(nil, nil).Once()

	info, err := LookupMerchant(context.Background(), registry, "0000000")

	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestLookupMerchant_Error(t *testing.T) {
	t.Parallel()

	registry := &mocks.MerchantRegistry{}
	registry.On("Lookup", mock.Anything, "5317878").Return(nil, errors.New("boom")).Once()

	_, err := LookupMerchant(context.Background(), registry, "5317878")

	require.ErrorContains(t, err, "5317878")
}
