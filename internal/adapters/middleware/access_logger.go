package middleware

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type skipAccessLogKey struct{}

type AccessLogger struct {
	logger zerolog.Logger
}

func NewAccessLogger(logger zerolog.Logger) *AccessLogger {
	return &AccessLogger{
		logger: logger.With().Str("component", "http_access").Logger(),
	}
}

func withoutAccessLog(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAccessLogKey{}, true)
}

func (a *AccessLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if skip, ok := r.Context().Value(skipAccessLogKey{}).(bool); ok && skip {
			next.ServeHTTP(w, r)

			return
		}

		startTime := time.Now()
		recorder := NewStatusRecorder(w)

		next.ServeHTTP(recorder, r)

		duration := time.Since(startTime)

		var logEvent *zerolog.Event

		switch status := recorder.StatusCode(); {
		case status >= http.StatusInternalServerError:
			logEvent = a.logger.Error()
		case status >= http.StatusBadRequest:
			logEvent = a.logger.Warn()
		default:
			logEvent = a.logger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Str("user_agent", r.UserAgent()).
			Int("status_code", recorder.StatusCode()).
			Int64("response_size_bytes", recorder.BytesWritten()).
			Dur("duration", duration)

		if requestID := chimiddleware.GetReqID(r.Context()); requestID != "" {
			logEvent.Str("request_id", requestID)
		}

		logEvent.Msg("HTTP request completed")
	})
}
