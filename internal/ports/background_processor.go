package ports

import "context"

// BackgroundRunner runs best-effort tasks detached from the caller.
type BackgroundRunner interface {
	Go(ctx context.Context, name string, task func(ctx context.Context))

	// Wait blocks until every task started so far has returned or ctx is done.
	Wait(ctx context.Context) error
}
