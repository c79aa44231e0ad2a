package ports

import (
	"context"

	"github.com/zolbooo/ebarimt/internal/domain"
)

// MerchantRegistry resolves a tax registration number against the remote registry.
// A nil MerchantInfo with a nil error means the registry does not know the number.
type MerchantRegistry interface {
	Lookup(ctx context.Context, regNo string) (*domain.MerchantInfo, error)
}
