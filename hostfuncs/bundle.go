package hostfuncs

import (
	"context"
)

// HostFuncBundle is a pre-configured set of related host functions.
// Bundles allow registering multiple handlers at once for common use cases.
type HostFuncBundle interface {
	// Handlers returns a map of handler names to ByteHandler functions.
	Handlers() map[string]ByteHandler
}

// staticBundle implements HostFuncBundle with a fixed set of handlers.
type staticBundle struct {
	handlers map[string]ByteHandler
}

func (b *staticBundle) Handlers() map[string]ByteHandler {
	return b.handlers
}

// ArithmeticBundle returns a bundle with host-side reference arithmetic:
// add, subtract, add_u64, subtract_u64. Thin guests may delegate their
// arithmetic to the host instead of carrying the kernels themselves.
func ArithmeticBundle() HostFuncBundle {
	return &staticBundle{
		handlers: map[string]ByteHandler{
			"add": NewJSONHandler(func(ctx context.Context, req AddRequest) AddResponse {
				return PerformAdd(ctx, req)
			}),
			"subtract": NewJSONHandler(func(ctx context.Context, req SubtractRequest) SubtractResponse {
				return PerformSubtract(ctx, req)
			}),
			"add_u64": NewJSONHandler(func(ctx context.Context, req AddUintRequest) AddUintResponse {
				return PerformAddUint(ctx, req)
			}),
			"subtract_u64": NewJSONHandler(func(ctx context.Context, req SubtractUintRequest) SubtractUintResponse {
				return PerformSubtractUint(ctx, req)
			}),
		},
	}
}

// compositeBundle combines multiple bundles into one.
type compositeBundle struct {
	bundles []HostFuncBundle
}

func (b *compositeBundle) Handlers() map[string]ByteHandler {
	result := make(map[string]ByteHandler)
	for _, bundle := range b.bundles {
		for name, handler := range bundle.Handlers() {
			result[name] = handler
		}
	}
	return result
}

// AllBundles returns a bundle containing all built-in host functions.
// Includes: add, subtract, add_u64, subtract_u64.
func AllBundles() HostFuncBundle {
	return &compositeBundle{
		bundles: []HostFuncBundle{
			ArithmeticBundle(),
		},
	}
}

// WithBundle registers all handlers from a bundle.
func WithBundle(bundle HostFuncBundle) RegistryOption {
	return func(b *registryBuilder) {
		for name, handler := range bundle.Handlers() {
			if err := b.addHandler(name, handler); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}
