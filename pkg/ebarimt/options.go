package ebarimt

import (
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/zolbooo/ebarimt/internal/config"
)

const (
	DefaultBaseURL         = "http://localhost:7080"
	DefaultRegistryBaseURL = "http://info.ebarimt.mn"

	defaultTimeout         = 30 * time.Second
	defaultResyncTimeout   = 2 * time.Minute
	defaultRegistryTimeout = 10 * time.Second
	defaultUserAgent       = "ebarimt-go/1.0"
)

// clientOptions configure a New call. clientOptions are set by the Option values passed to New.
type clientOptions struct {
	timeout        time.Duration
	resyncTimeout  time.Duration
	userAgent      string
	circuitBreaker config.CircuitBreakerConfig
	logger         zerolog.Logger
	tracerProvider trace.TracerProvider

	registryBaseURL string
	registryTimeout time.Duration
}

type Option func(options *clientOptions)

func defaultClientOptions() clientOptions {
	return clientOptions{
		timeout:       defaultTimeout,
		resyncTimeout: defaultResyncTimeout,
		userAgent:     defaultUserAgent,
		circuitBreaker: config.CircuitBreakerConfig{
			Enabled:      true,
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			MinRequests:  5,
			FailureRatio: 0.8,
		},
		logger:          zerolog.Nop(),
		tracerProvider:  otel.GetTracerProvider(),
		registryBaseURL: DefaultRegistryBaseURL,
		registryTimeout: defaultRegistryTimeout,
	}
}

// WithTimeout returns an Option which bounds every PosAPI call.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithResyncTimeout returns an Option which bounds the background resync started by Put.
func WithResyncTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.resyncTimeout = timeout
	}
}

// WithUserAgent returns an Option which sets the User-Agent header sent to the PosAPI.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithLogger returns an Option which sets the logger. Clients log nothing by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithTracerProvider returns an Option which sets the provider of operation spans.
// The global provider is used by default.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(o *clientOptions) {
		o.tracerProvider = provider
	}
}

// WithCircuitBreaker returns an Option which trips the breaker once minRequests calls were
// made within interval and their failure ratio reaches failureRatio. The breaker stays open
// for openTimeout.
func WithCircuitBreaker(minRequests uint32, failureRatio float64, interval, openTimeout time.Duration) Option {
	return func(o *clientOptions) {
		o.circuitBreaker.Enabled = true
		o.circuitBreaker.MinRequests = minRequests
		o.circuitBreaker.FailureRatio = failureRatio
		o.circuitBreaker.Interval = interval
		o.circuitBreaker.Timeout = openTimeout
	}
}

// WithoutCircuitBreaker returns an Option which sends every call straight to the PosAPI.
func WithoutCircuitBreaker() Option {
	return func(o *clientOptions) {
		o.circuitBreaker.Enabled = false
	}
}

// WithRegistryBaseURL returns an Option which points merchant lookups at another registry.
func WithRegistryBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.registryBaseURL = baseURL
	}
}

// WithRegistryTimeout returns an Option which bounds merchant lookups.
func WithRegistryTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.registryTimeout = timeout
	}
}
