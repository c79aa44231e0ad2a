package ebarimt

import (
	"context"
	"fmt"
	"strings"

	"github.com/zolbooo/ebarimt/internal/adapters"
	"github.com/zolbooo/ebarimt/internal/config"
	"github.com/zolbooo/ebarimt/internal/infrastructure"
	"github.com/zolbooo/ebarimt/internal/ports"
	"github.com/zolbooo/ebarimt/internal/service"
)

// MerchantRegistry looks organizations up in the public Ebarimt registry.
type MerchantRegistry struct {
	registry ports.MerchantRegistry
}

// NewMerchantRegistry honours WithRegistryBaseURL, WithRegistryTimeout and WithLogger.
func NewMerchantRegistry(opts ...Option) (*MerchantRegistry, error) {
	options := defaultClientOptions()
	for _, opt := range opts {
		opt(&options)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(options.registryBaseURL), "/")
	if err := config.ValidateBaseURL(baseURL); err != nil {
		return nil, fmt.Errorf("invalid merchant registry base URL: %w", err)
	}

	registry := adapters.NewMerchantRegistryClient(config.MerchantRegistryConfig{
		BaseURL: baseURL,
		Timeout: options.registryTimeout,
	}, infrastructure.Logger{Logger: options.logger})

	return &MerchantRegistry{registry: registry}, nil
}

// Lookup returns nil without error when the registry does not know regNo.
func (r *MerchantRegistry) Lookup(ctx context.Context, regNo string) (*MerchantInfo, error) {
	return service.LookupMerchant(ctx, r.registry, regNo)
}

// LookupMerchant is a one-off lookup against the registry configured by opts.
func LookupMerchant(ctx context.Context, regNo string, opts ...Option) (*MerchantInfo, error) {
	registry, err := NewMerchantRegistry(opts...)
	if err != nil {
		return nil, err
	}

	return registry.Lookup(ctx, regNo)
}
