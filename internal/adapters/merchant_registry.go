package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/zolbooo/ebarimt/internal/config"
	"github.com/zolbooo/ebarimt/internal/domain"
	"github.com/zolbooo/ebarimt/internal/infrastructure"
)

const merchantInfoPath = "/rest/merchant/info"

type (
	MerchantRegistryClient struct {
		client *resty.Client
		logger infrastructure.Logger
	}

	merchantInfoResponse struct {
		Found       bool   `json:"found"`
		Name        string `json:"name"`
		VATPayer    bool   `json:"vatpayer"`
		CityPayer   bool   `json:"citypayer"`
		FreeProject bool   `json:"freeProject"`
	}
)

func NewMerchantRegistryClient(cfg config.MerchantRegistryConfig, logger infrastructure.Logger) *MerchantRegistryClient {
	client := resty.New()

	client.SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetHeader("Accept", "application/json")

	return &MerchantRegistryClient{
		client: client,
		logger: logger.Component("merchant_registry"),
	}
}

// Lookup returns nil when the registry reports the number as not found.
func (c *MerchantRegistryClient) Lookup(ctx context.Context, regNo string) (*domain.MerchantInfo, error) {
	regNo = strings.TrimSpace(regNo)
	if regNo == "" {
		return nil, domain.NewInvalidArgumentError("registration number", "must not be empty")
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("regno", regNo).
		Get(merchantInfoPath)
	if err != nil {
		c.logger.Error().Err(err).Str("regno", regNo).Msg("merchant registry request failed")

		return nil, domain.NewTransportError(merchantInfoPath, 0, err)
	}

	if !resp.IsSuccess() {
		return nil, domain.NewTransportError(
			merchantInfoPath,
			resp.StatusCode(),
			fmt.Errorf("HTTP %d: %s", resp.StatusCode(), resp.Status()),
		)
	}

	var info merchantInfoResponse
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		return nil, domain.NewTransportError(merchantInfoPath, resp.StatusCode(), fmt.Errorf("%w: %w", domain.ErrMalformedReply, err))
	}

	c.logger.Debug().
		Str("regno", regNo).
		Bool("found", info.Found).
		Msg("merchant registry lookup completed")

	if !info.Found {
		return nil, nil
	}

	return &domain.MerchantInfo{
		Name:        info.Name,
		VATPayer:    info.VATPayer,
		CityPayer:   info.CityPayer,
		FreeProject: info.FreeProject,
	}, nil
}
