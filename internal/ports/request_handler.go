package ports

import (
	"context"
	"net/http"

	"github.com/zolbooo/ebarimt/internal/domain"
)

type (
	// RequestHandler serves the sidecar HTTP endpoints.
	RequestHandler interface {
		HealthCheck(w http.ResponseWriter, r *http.Request)
		LivenessCheck(w http.ResponseWriter, r *http.Request)
		GetInformation(w http.ResponseWriter, r *http.Request)
	}

	// RegisterStatus is the read-only view of a register the sidecar exposes.
	RegisterStatus interface {
		CheckAPI(ctx context.Context) (domain.CheckAPIResult, error)
		GetInformation(ctx context.Context) (domain.PosInformation, error)
	}
)
