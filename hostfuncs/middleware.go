package hostfuncs

import (
	"context"
	"log/slog"
)

// Middleware is a function that wraps a ByteHandler to add cross-cutting
// behavior. Middleware executes in FIFO order (first registered wraps
// first, onion model).
type Middleware func(next ByteHandler) ByteHandler

// RegistryOption is a functional option for configuring a HandlerRegistry.
type RegistryOption func(*registryBuilder)

// PanicRecoveryMiddleware returns a middleware that catches panics and
// converts them to structured ErrorResponse JSON instead of crashing the
// host.
func PanicRecoveryMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) (resp []byte, err error) {
			defer func() {
				if r := recover(); r != nil {
					resp = NewPanicError(r).ToJSON()
					err = nil // Return JSON error, not Go error
				}
			}()
			return next(ctx, payload)
		}
	}
}

// LoggingMiddleware returns a middleware that logs host function
// invocations with slog.
func LoggingMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			funcName := "unknown"
			if hc, ok := ctx.(HostContext); ok {
				funcName = hc.FunctionName()
			}
			slog.DebugContext(ctx, "invoking host function", "function", funcName)
			resp, err := next(ctx, payload)
			if err != nil {
				slog.ErrorContext(ctx, "host function failed", "function", funcName, "error", err)
			} else {
				slog.DebugContext(ctx, "host function completed", "function", funcName)
			}
			return resp, err
		}
	}
}
