package config

import (
	"time"
)

// Compile time variables are set by -ldflags.
var (
	ServiceVersion string
	CommitSHA      string
)

type (
	ServiceConfig struct {
		AppConfig        AppConfig              `json:"app_config"`
		Logging          LoggingConfig          `json:"logging"`
		Telemetry        Telemetry              `json:"telemetry"`
		PosAPI           PosAPIConfig           `json:"pos_api"`
		MerchantRegistry MerchantRegistryConfig `json:"merchant_registry"`
		HTTPServer       HTTPServerConfig       `json:"http_server"`
		Backoff          BackoffConfig          `json:"backoff"`
	}

	AppConfig struct {
		ServiceName    string `envconfig:"APP_SERVICE_NAME" default:"ebarimt" json:"service_name"`
		ServiceVersion string `envconfig:"APP_SERVICE_VERSION" default:"0.0.0" json:"service_version"`
		CommitSHA      string `envconfig:"APP_COMMIT_SHA" default:"unknown" json:"commit_sha"`
		Env            string `envconfig:"APP_ENVIRONMENT" default:"unknown" json:"env"`
	}

	LoggingConfig struct {
		Level  string `envconfig:"LOGGING_LEVEL" default:"info" json:"level"`
		Format string `envconfig:"LOGGING_FORMAT" default:"json" json:"format"`
	}

	Telemetry struct {
		ExporterType string `envconfig:"OTEL_EXPORTER" default:"grpc" json:"exporter_type"`

		OtelGRPCHost string `envconfig:"OTEL_HOST" json:"otel_grpc_host"`
		OtelGRPCPort string `envconfig:"OTEL_PORT" default:"4317" json:"otel_grpc_port"`

		Metrics Metrics `json:"metrics"`
		Traces  Traces  `json:"traces"`
	}

	Metrics struct {
		Enabled bool `envconfig:"METRICS_ENABLED" default:"false" json:"enabled"`
	}

	Traces struct {
		Enabled      bool    `envconfig:"TRACES_ENABLED" default:"false" json:"enabled"`
		SamplerRatio float64 `envconfig:"TRACES_SAMPLER_RATIO" default:"1" json:"sampler_ratio"`
	}

	// CircuitBreakerConfig trips the breaker once MinRequests calls were made within Interval
	// and the failure ratio reaches FailureRatio.
	CircuitBreakerConfig struct {
		Enabled      bool          `envconfig:"POSAPI_CB_ENABLED" default:"true" json:"enabled"`
		MaxRequests  uint32        `envconfig:"POSAPI_CB_MAX_REQUESTS" default:"1" json:"max_requests"`
		Interval     time.Duration `envconfig:"POSAPI_CB_INTERVAL" default:"60s" json:"interval"`
		Timeout      time.Duration `envconfig:"POSAPI_CB_TIMEOUT" default:"30s" json:"timeout"`
		MinRequests  uint32        `envconfig:"POSAPI_CB_MIN_REQUESTS" default:"5" json:"min_requests"`
		FailureRatio float64       `envconfig:"POSAPI_CB_FAILURE_RATIO" default:"0.8" json:"failure_ratio"`
	}

	PosAPIConfig struct {
		BaseURL        string               `envconfig:"POSAPI_BASE_URL" default:"http://localhost:7080" json:"base_url"`
		Timeout        time.Duration        `envconfig:"POSAPI_TIMEOUT" default:"30s" json:"timeout"`
		ResyncTimeout  time.Duration        `envconfig:"POSAPI_RESYNC_TIMEOUT" default:"2m" json:"resync_timeout"`
		UserAgent      string               `envconfig:"POSAPI_USER_AGENT" default:"ebarimt-go/1.0" json:"user_agent"`
		CircuitBreaker CircuitBreakerConfig `json:"circuit_breaker"`
	}

	MerchantRegistryConfig struct {
		BaseURL string        `envconfig:"MERCHANT_REGISTRY_BASE_URL" default:"http://info.ebarimt.mn" json:"base_url"`
		Timeout time.Duration `envconfig:"MERCHANT_REGISTRY_TIMEOUT" default:"10s" json:"timeout"`
	}

	HTTPServerConfig struct {
		Port            int             `envconfig:"HTTP_SERVER_PORT" default:"8089" json:"port"`
		Host            string          `envconfig:"HTTP_SERVER_HOST" default:"127.0.0.1" json:"host"`
		ReadTimeout     time.Duration   `envconfig:"HTTP_SERVER_READ_TIMEOUT" default:"30s" json:"read_timeout"`
		WriteTimeout    time.Duration   `envconfig:"HTTP_SERVER_WRITE_TIMEOUT" default:"60s" json:"write_timeout"`
		IdleTimeout     time.Duration   `envconfig:"HTTP_SERVER_IDLE_TIMEOUT" default:"120s" json:"idle_timeout"`
		ShutdownTimeout time.Duration   `envconfig:"HTTP_SERVER_SHUTDOWN_TIMEOUT" default:"30s" json:"shutdown_timeout"`
		AccessLog       AccessLogConfig `json:"access_log"`
	}

	// BackoffConfig paces the serve-time initialization retries while the PosAPI is unreachable.
	BackoffConfig struct {
		MaxAttempts int           `envconfig:"INIT_MAX_ATTEMPTS" default:"5" json:"max_attempts"`
		BaseDelay   time.Duration `envconfig:"INIT_BACKOFF_BASE_DELAY" default:"1s" json:"base_delay"`
		MaxDelay    time.Duration `envconfig:"INIT_BACKOFF_MAX_DELAY" default:"30s" json:"max_delay"`
		Multiplier  float64       `envconfig:"INIT_BACKOFF_MULTIPLIER" default:"2" json:"multiplier"`
		Jitter      float64       `envconfig:"INIT_BACKOFF_JITTER" default:"0.2" json:"jitter"`
	}

	AccessLogConfig struct {
		Enabled         bool `envconfig:"HTTP_SERVER_ACCESS_LOG_ENABLED" default:"true" json:"enabled"`
		LogHealthChecks bool `envconfig:"HTTP_SERVER_ACCESS_LOG_HEALTH_CHECKS" default:"false" json:"log_health_checks"`
	}
)
