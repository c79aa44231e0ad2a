package infrastructure

import (
	"context"
	"net/http"
	"time"
)

type NoOpMetrics struct{}

func (n *NoOpMetrics) RecordPosAPIRequest(_ context.Context, _ string, _ bool, _ time.Duration) {
}

func (n *NoOpMetrics) RecordInitOutcome(_ context.Context, _, _ string) {
}

func (n *NoOpMetrics) RecordResync(_ context.Context, _ string, _ bool) {
}

func (n *NoOpMetrics) RecordBillSubmission(_ context.Context, _ string) {
}

func (n *NoOpMetrics) RecordHTTPRequest(_ context.Context, _, _ string, _ int, _ time.Duration) {
}

func (n *NoOpMetrics) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (n *NoOpMetrics) Shutdown(_ context.Context) error {
	return nil
}
