package runtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zolbooo/ebarimt/internal/config"
	"github.com/zolbooo/ebarimt/internal/domain"
)

const (
	healthyCheckBody = `{"success":true,"config":{"success":true},"database":{"success":true},"network":{"success":true}}`
	brokenCheckBody  = `{"success":false,"config":{"success":false,"message":"[205] db down"},"database":{"success":true},"network":{"success":true}}`
)

func newFakePosAPI(t *testing.T, checkBody string) string {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/checkApi", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(checkBody))
	})
	mux.HandleFunc("/getInformation", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"registerNo":"1234567","posId":"10","extraInfo":{"countBill":1}}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server.URL
}

func testConfig(baseURL string) *config.ServiceConfig {
	return &config.ServiceConfig{
		AppConfig: config.AppConfig{ServiceName: "ebarimt", ServiceVersion: "test"},
		Logging:   config.LoggingConfig{Level: "disabled", Format: "json"},
		PosAPI: config.PosAPIConfig{
			BaseURL:       baseURL,
			Timeout:       2 * time.Second,
			ResyncTimeout: 2 * time.Second,
		},
		MerchantRegistry: config.MerchantRegistryConfig{
			BaseURL: "http://127.0.0.1:1",
			Timeout: time.Second,
		},
		Backoff: config.BackoffConfig{
			MaxAttempts: 3,
			BaseDelay:   10 * time.Millisecond,
			MaxDelay:    50 * time.Millisecond,
			Multiplier:  2,
		},
		HTTPServer: config.HTTPServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates service context with default values", func(t *testing.T) {
		t.Parallel()

		serviceCtx := New(testConfig("http://localhost:7080"))

		require.NotNil(t, serviceCtx)
		require.NotNil(t, serviceCtx.shutdownChannel)
		require.Nil(t, serviceCtx.deps)
		require.Nil(t, serviceCtx.serverReady)
	})

	t.Run("creates service context with options", func(t *testing.T) {
		t.Parallel()

		ch := make(chan os.Signal, 1)
		serviceCtx := New(
			testConfig("http://localhost:7080"),
			WithServiceTermination(ch),
			WithWaitingForServer(),
			WithDependencyOptions(WithMerchantRegistry()),
		)

		require.NotNil(t, serviceCtx)
		require.Equal(t, ch, serviceCtx.shutdownChannel)
		require.NotNil(t, serviceCtx.serverReady)
		require.Len(t, serviceCtx.dependencyOptions, 1)
	})
}

func TestNewDependencies_ServesSidecarRoutes(t *testing.T) {
	t.Parallel()

	deps, err := NewDependencies(t.Context(), testConfig(newFakePosAPI(t, brokenCheckBody)), WithHTTPServer(), WithMerchantRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close(context.Background()) })

	require.NotNil(t, deps.Adapters.MerchantRegistry)

	cases := []struct {
		path           string
		expectedStatus int
	}{
		{path: healthPath, expectedStatus: http.StatusServiceUnavailable},
		{path: livenessPath, expectedStatus: http.StatusOK},
		{path: informationPath, expectedStatus: http.StatusOK},
		{path: metricsPath, expectedStatus: http.StatusNotFound},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		deps.Infra.HTTPServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

		assert.Equal(t, tc.expectedStatus, rec.Code, tc.path)
	}
}

func TestServiceCtx_RunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	serviceCtx := New(testConfig(newFakePosAPI(t, healthyCheckBody)), WithWaitingForServer())

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)

	go func() {
		done <- serviceCtx.Run(ctx)
	}()

	serviceCtx.WaitForServer()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not shut down")
	}
}

func TestServiceCtx_RunFailsWhenRegisterIsNotReady(t *testing.T) {
	t.Parallel()

	err := New(testConfig(newFakePosAPI(t, brokenCheckBody))).Run(t.Context())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "initial_check")
}

func TestServiceCtx_RunRetriesWhilePosAPIIsUnreachable(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/checkApi", func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)

			return
		}

		_, _ = w.Write([]byte(healthyCheckBody))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := testConfig(server.URL)
	cfg.PosAPI.CircuitBreaker.Enabled = false

	serviceCtx := New(cfg, WithWaitingForServer())

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)

	go func() {
		done <- serviceCtx.Run(ctx)
	}()

	serviceCtx.WaitForServer()
	cancel()

	require.NoError(t, <-done)
	assert.Equal(t, int32(3), calls.Load())
}

func TestServiceCtx_RunGivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/checkApi", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := testConfig(server.URL)
	cfg.PosAPI.CircuitBreaker.Enabled = false

	err := New(cfg).Run(t.Context())

	require.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, int32(3), calls.Load())
}

func TestServiceCtx_RunDoesNotRetryServiceFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/checkApi", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(brokenCheckBody))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	require.Error(t, New(testConfig(server.URL)).Run(t.Context()))
	assert.Equal(t, int32(1), calls.Load())
}
