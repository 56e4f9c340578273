// Package host provides the host-runtime side of the SDK: a wazero-based
// executor that loads calcplug guest modules, exposes host functions to
// them, and calls their arithmetic exports.
package host

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/calcplug-dev/calcplug-sdk/hostfuncs"
)

// DefaultHostModuleName is the WASM module name guests import host
// functions from.
const DefaultHostModuleName = "calc_host"

// executorConfig holds configuration for the Executor.
type executorConfig struct {
	registry       *hostfuncs.HandlerRegistry
	moduleName     string
	maxRequestSize uint32
}

func defaultExecutorConfig() executorConfig {
	return executorConfig{
		moduleName:     DefaultHostModuleName,
		maxRequestSize: hostfuncs.DefaultMaxRequestSize,
	}
}

// Option defines a functional option for configuring the Executor.
type Option func(*executorConfig)

// WithHostFunctions configures the executor with a host function registry.
func WithHostFunctions(registry *hostfuncs.HandlerRegistry) Option {
	return func(c *executorConfig) {
		c.registry = registry
	}
}

// WithModuleName sets the host module name (default: "calc_host").
func WithModuleName(name string) Option {
	return func(c *executorConfig) {
		c.moduleName = name
	}
}

// WithMaxRequestSize sets the maximum request size read from guest memory.
func WithMaxRequestSize(size uint32) Option {
	return func(c *executorConfig) {
		c.maxRequestSize = size
	}
}

// Executor manages the lifecycle of calcplug WASM modules.
type Executor struct {
	runtime  wazero.Runtime
	registry *hostfuncs.HandlerRegistry
	config   executorConfig
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	cfg := defaultExecutorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	// Default registry if not provided
	if cfg.registry == nil {
		reg, err := hostfuncs.NewRegistry()
		if err != nil {
			return nil, fmt.Errorf("failed to create default registry: %w", err)
		}
		cfg.registry = reg
	}

	e := &Executor{
		registry: cfg.registry,
		config:   cfg,
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	if err := e.registerHostFunctions(ctx); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return e, nil
}

// Close releases resources held by the executor.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}
