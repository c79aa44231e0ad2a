package middleware

import (
	"net/http"
)

// HealthCheckFilter keeps probe and scrape traffic out of the access log.
type HealthCheckFilter struct {
	quietPaths      map[string]struct{}
	logHealthChecks bool
}

func NewHealthCheckFilter(logHealthChecks bool, paths ...string) *HealthCheckFilter {
	quietPaths := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		quietPaths[path] = struct{}{}
	}

	return &HealthCheckFilter{
		quietPaths:      quietPaths,
		logHealthChecks: logHealthChecks,
	}
}

func (h *HealthCheckFilter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, quiet := h.quietPaths[r.URL.Path]; quiet && !h.logHealthChecks {
			next.ServeHTTP(w, r.WithContext(withoutAccessLog(r.Context())))

			return
		}

		next.ServeHTTP(w, r)
	})
}
