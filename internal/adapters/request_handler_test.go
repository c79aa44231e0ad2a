package adapters

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zolbooo/ebarimt/internal/domain"
	"github.com/zolbooo/ebarimt/internal/infrastructure"
	"github.com/zolbooo/ebarimt/internal/mocks"
)

func TestRequestHandler_HealthCheck(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		result         domain.CheckAPIResult
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "healthy service",
			result: domain.CheckAPIResult{
				Success:  true,
				Config:   domain.StatusOK(),
				Database: domain.StatusOK(),
				Network:  domain.StatusOK(),
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "OK",
		},
		{
			name: "unhealthy service",
			result: domain.CheckAPIResult{
				Config:   domain.StatusFailed("[205] db down"),
				Database: domain.StatusOK(),
				Network:  domain.StatusOK(),
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "DOWN",
		},
		{
			name:           "unreachable service",
			err:            domain.NewTransportError("/checkApi", 0, errors.New("connection refused")),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "posapi_unreachable",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			register := &mocks.PosAPI{}
			register.On("CheckAPI", mock.Anything).Return(tc.result, tc.err).Once()

			handler := NewRequestHandler(register, "test", infrastructure.NewTestLogger())

			rec := httptest.NewRecorder()
			handler.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tc.expectedBody)
			register.AssertExpectations(t)
		})
	}
}

func TestRequestHandler_HealthCheck_ListsFailedSubsystems(t *testing.T) {
	t.Parallel()

	register := &mocks.PosAPI{}
	register.On("CheckAPI", mock.Anything).Return(domain.CheckAPIResult{
		Config:   domain.StatusFailed("[100] stale"),
		Database: domain.StatusOK(),
		Network:  domain.StatusFailed("offline"),
	}, nil).Once()

	rec := httptest.NewRecorder()
	NewRequestHandler(register, "test", infrastructure.NewTestLogger()).
		HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"config", "network"}, body.FailedSubsystems)
	assert.Equal(t, "[100] stale", body.CheckAPI.Config.Message)
}

func TestRequestHandler_LivenessCheck(t *testing.T) {
	t.Parallel()

	register := &mocks.PosAPI{}
	rec := httptest.NewRecorder()

	NewRequestHandler(register, "1.2.3", infrastructure.NewTestLogger()).
		LivenessCheck(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1.2.3")
	register.AssertNotCalled(t, "CheckAPI", mock.Anything)
}

func TestRequestHandler_GetInformation(t *testing.T) {
	t.Parallel()

	info := domain.PosInformation{RegisterNo: "1234567", PosID: "10", ExtraInfo: domain.ExtraInfo{CountBill: 3}}

	register := &mocks.PosAPI{}
	register.On("GetInformation", mock.Anything).Return(info, nil).Once()

	rec := httptest.NewRecorder()
	NewRequestHandler(register, "test", infrastructure.NewTestLogger()).
		GetInformation(rec, httptest.NewRequest(http.MethodGet, "/v1/information", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var decoded domain.PosInformation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, info, decoded)
}

func TestRequestHandler_GetInformation_TransportFailure(t *testing.T) {
	t.Parallel()

	register := &mocks.PosAPI{}
	register.On("GetInformation", mock.Anything).
		Return(domain.PosInformation{}, domain.NewTransportError("/getInformation", 0, errors.New("EOF"))).Once()

	rec := httptest.NewRecorder()
	NewRequestHandler(register, "test", infrastructure.NewTestLogger()).
		GetInformation(rec, httptest.NewRequest(http.MethodGet, "/v1/information", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "posapi_unavailable")
}
