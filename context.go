package guardrail

import (
	"context"

	"github.com/dmitrymomot/guardrail/engine"
)

// contextKey scopes values guardrail stores on the request context.
type contextKey struct{ name string }

var resultKey = contextKey{"guardrail.result"}

// WithResult returns a context carrying the validation result for downstream
// handlers.
func WithResult(ctx context.Context, result engine.Result) context.Context {
	return context.WithValue(ctx, resultKey, result)
}

// ResultFrom extracts the validation result stored by the middleware. The
// second return is false when the request did not pass through a guardrail
// middleware.
func ResultFrom(ctx context.Context) (engine.Result, bool) {
	result, ok := ctx.Value(resultKey).(engine.Result)
	return result, ok
}
