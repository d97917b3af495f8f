package debounce

import (
	"context"
	"time"
)

// Run coalesces values from in. A value is emitted once d passes
// without a newer one arriving; only the latest value is kept.
//
// When in is closed the pending value, if any, is flushed and the
// output is closed. When ctx is done the output is closed and any
// pending value is dropped.
func Run[T any](ctx context.Context, in <-chan T, d time.Duration) <-chan T {
	out := make(chan T)
	go run(ctx, in, d, out)
	return out
}

func run[T any](ctx context.Context, in <-chan T, d time.Duration, out chan<- T) {
	defer close(out)

	timer := time.NewTimer(d)
	timer.Stop()

	var (
		pending T
		has     bool
	)

	emit := func() bool {
		select {
		case out <- pending:
			var zero T
			pending, has = zero, false
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-in:
			if !ok {
				timer.Stop()
				if has {
					emit()
				}
				return
			}
			pending, has = v, true
			timer.Reset(d)
		case <-timer.C:
			if has && !emit() {
				return
			}
		}
	}
}
