package adapters

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/zolbooo/ebarimt/internal/domain"
	"github.com/zolbooo/ebarimt/internal/infrastructure"
	"github.com/zolbooo/ebarimt/internal/ports"
)

type (
	RequestHandler struct {
		register ports.RegisterStatus
		version  string
		logger   infrastructure.Logger
	}

	healthResponse struct {
		Status           string                `json:"status"`
		Timestamp        time.Time             `json:"timestamp"`
		Version          string                `json:"version"`
		FailedSubsystems []string              `json:"failed_subsystems,omitempty"`
		CheckAPI         domain.CheckAPIResult `json:"check_api"`
	}

	livenessResponse struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
		Version   string    `json:"version"`
	}

	errorResponse struct {
		Error      string    `json:"error"`
		Message    string    `json:"message"`
		Details    string    `json:"details,omitempty"`
		StatusCode int       `json:"status_code"`
		Timestamp  time.Time `json:"timestamp"`
	}
)

func NewRequestHandler(register ports.RegisterStatus, version string, logger infrastructure.Logger) *RequestHandler {
	return &RequestHandler{
		register: register,
		version:  version,
		logger:   logger.Component("request_handler"),
	}
}

// HealthCheck reports the PosAPI checkApi snapshot, 503 when the service is unhealthy.
func (h *RequestHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	result, err := h.register.CheckAPI(r.Context())
	if err != nil {
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "posapi_unreachable", "PosAPI health check failed", err)

		return
	}

	resp := healthResponse{
		Status:           "OK",
		Timestamp:        time.Now(),
		Version:          h.version,
		FailedSubsystems: result.FailedSubsystems(),
		CheckAPI:         result,
	}

	statusCode := http.StatusOK
	if !result.Success {
		resp.Status = "DOWN"
		statusCode = http.StatusServiceUnavailable
	}

	h.writeJSON(w, statusCode, resp)
}

// LivenessCheck answers without touching the PosAPI.
func (h *RequestHandler) LivenessCheck(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, livenessResponse{
		Status:    "OK",
		Timestamp: time.Now(),
		Version:   h.version,
	})
}

func (h *RequestHandler) GetInformation(w http.ResponseWriter, r *http.Request) {
	info, err := h.register.GetInformation(r.Context())
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, domain.ErrTransport) {
			statusCode = http.StatusBadGateway
		}

		h.writeErrorResponse(w, statusCode, "posapi_unavailable", "Failed to read register information", err)

		return
	}

	h.writeJSON(w, http.StatusOK, info)
}

func (h *RequestHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, errorType, message string, err error) {
	h.logger.Error().Err(err).Str("error_type", errorType).Msg(message)

	h.writeJSON(w, statusCode, errorResponse{
		Error:      errorType,
		Message:    message,
		Details:    err.Error(),
		StatusCode: statusCode,
		Timestamp:  time.Now(),
	})
}

func (h *RequestHandler) writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}
