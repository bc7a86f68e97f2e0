package extract

import (
	"context"
	"time"

	"github.com/quotevault/quotevault/internal/common"
)

// raceTimeout runs op against a fixed deadline and returns whichever
// settles first. When the timer wins, the result is a timeout
// ExtractionError and op is left running with its result discarded.
// The loser is orphaned, not cancelled, and may keep consuming
// resources until it finishes on its own.
func raceTimeout[T any](ctx context.Context, d time.Duration, op func(context.Context) (T, error)) (T, error) {
	type outcome struct {
		val T
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		val, err := op(ctx)
		done <- outcome{val: val, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	var zero T
	select {
	case out := <-done:
		return out.val, out.err
	case <-timer.C:
		return zero, common.NewTimeoutError()
	case <-ctx.Done():
		return zero, common.NewExtractionError(ctx.Err().Error(), ctx.Err())
	}
}
