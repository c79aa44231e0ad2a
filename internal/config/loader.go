package config

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Init config from environment variables.
func Init() (*ServiceConfig, error) {
	cfg := &ServiceConfig{}

	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service configuration: %w", err)
	}

	if len(ServiceVersion) != 0 {
		cfg.AppConfig.ServiceVersion = ServiceVersion
	}

	if len(CommitSHA) != 0 {
		cfg.AppConfig.CommitSHA = CommitSHA
	}

	cfg.PosAPI.BaseURL = strings.TrimRight(cfg.PosAPI.BaseURL, "/")
	cfg.MerchantRegistry.BaseURL = strings.TrimRight(cfg.MerchantRegistry.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values envconfig cannot check on its own.
func (c *ServiceConfig) Validate() error {
	for name, raw := range map[string]string{
		"POSAPI_BASE_URL":            c.PosAPI.BaseURL,
		"MERCHANT_REGISTRY_BASE_URL": c.MerchantRegistry.BaseURL,
	} {
		if err := ValidateBaseURL(raw); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	if c.PosAPI.Timeout <= 0 {
		return fmt.Errorf("invalid POSAPI_TIMEOUT: must be positive, got %s", c.PosAPI.Timeout)
	}

	if c.PosAPI.ResyncTimeout <= 0 {
		return fmt.Errorf("invalid POSAPI_RESYNC_TIMEOUT: must be positive, got %s", c.PosAPI.ResyncTimeout)
	}

	ratio := c.PosAPI.CircuitBreaker.FailureRatio
	if ratio <= 0 || ratio > 1 {
		return fmt.Errorf("invalid POSAPI_CB_FAILURE_RATIO: must be in (0, 1], got %v", ratio)
	}

	if c.Backoff.MaxAttempts < 1 {
		return fmt.Errorf("invalid INIT_MAX_ATTEMPTS: must be at least 1, got %d", c.Backoff.MaxAttempts)
	}

	return nil
}

// DumpConfig writes the configuration as indented JSON.
func DumpConfig(w io.Writer, cfg *ServiceConfig) error {
	configJSON, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s\n", string(configJSON))

	return err
}

// ValidateBaseURL accepts absolute http and https URLs.
func ValidateBaseURL(raw string) error {
	parsedURL, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got: %q", parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("URL must include a host")
	}

	return nil
}
