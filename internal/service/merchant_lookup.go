package service

import (
	"context"
	"fmt"

	"github.com/zolbooo/ebarimt/internal/domain"
	"github.com/zolbooo/ebarimt/internal/ports"
)

// LookupMerchant resolves regNo against registry. It returns nil, nil when the number is unknown.
func LookupMerchant(ctx context.Context, registry ports.MerchantRegistry, regNo string) (*domain.MerchantInfo, error) {
	info, err := registry.Lookup(ctx, regNo)
	if err != nil {
		return nil, fmt.Errorf("failed to look up merchant %s: %w", regNo, err)
	}

	return info, nil
}
