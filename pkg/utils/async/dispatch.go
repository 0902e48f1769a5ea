package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
)

// Dispatcher runs a handler on behalf of a request. Dispatch and Inline satisfy it.
type Dispatcher func(ctx context.Context, handler func(ctx context.Context) error)

// Dispatch executes a handler function asynchronously in a new goroutine.
// The handler gets a background context that keeps the caller's logger, so it
// outlives the request. Errors and panics are logged, never propagated.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go run(bgCtx, handler)
}

// Inline runs the handler in the calling goroutine with the same error and
// panic handling as Dispatch.
func Inline(ctx context.Context, handler func(ctx context.Context) error) {
	run(ctx, handler)
}

func run(ctx context.Context, handler func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			logging.From(ctx).Error("panic in async handler",
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()

	if err := handler(ctx); err != nil {
		logging.From(ctx).Error("async handler failed", "error", goerr.Unwrap(err))
	}
}
