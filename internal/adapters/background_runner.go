package adapters

import (
	"context"
	"fmt"
	"sync"

	"github.com/zolbooo/ebarimt/internal/infrastructure"
)

// DetachedRunner runs tasks on their own goroutines and keeps count of them so a caller can
// drain outstanding work before exiting.
type DetachedRunner struct {
	wg     sync.WaitGroup
	logger infrastructure.Logger
}

func NewDetachedRunner(logger infrastructure.Logger) *DetachedRunner {
	return &DetachedRunner{
		logger: logger.Component("background"),
	}
}

// Go starts task with a context that survives the cancellation of ctx but keeps its values.
func (r *DetachedRunner) Go(ctx context.Context, name string, task func(ctx context.Context)) {
	detached := context.WithoutCancel(ctx)

	r.wg.Add(1)

	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error().
					Str("task", name).
					Str("panic", fmt.Sprint(rec)).
					Msg("background task panicked")
			}
		}()

		task(detached)
	}()
}

func (r *DetachedRunner) Wait(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for background tasks: %w", ctx.Err())
	}
}
