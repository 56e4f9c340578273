package host

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero/api"

	"github.com/calcplug-dev/calcplug-sdk/hostfuncs"
	sdklog "github.com/calcplug-dev/calcplug-sdk/log"
)

// registerHostFunctions builds the host module guests import from.
// Every registry handler is exported under its name with the packed i64
// request/response convention; log_message is always exported so guest
// slog output reaches the host logger.
func (e *Executor) registerHostFunctions(ctx context.Context) error {
	builder := e.runtime.NewHostModuleBuilder(e.config.moduleName)

	for _, name := range e.registry.Names() {
		funcName := name // capture for closure
		builder.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
				e.handleRegistryCall(ctx, mod, stack, funcName)
			}), []api.ValueType{api.ValueTypeI64}, []api.ValueType{api.ValueTypeI64}).
			Export(funcName)
	}

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
			handleLogMessage(ctx, mod, stack)
		}), []api.ValueType{api.ValueTypeI64}, nil).
		Export("log_message")

	_, err := builder.Instantiate(ctx)
	return err
}

// handleRegistryCall handles a host function call from WASM.
// It reads the request from guest memory, invokes the handler, and writes
// the response back.
func (e *Executor) handleRegistryCall(ctx context.Context, mod api.Module, stack []uint64, name string) {
	ptr, length := unpackPtrLen(stack[0])

	if length > e.config.maxRequestSize {
		errMsg := fmt.Sprintf("request size %d exceeds maximum %d bytes", length, e.config.maxRequestSize)
		slog.ErrorContext(ctx, "host: "+errMsg, "function", name)
		stack[0] = writeErrorResponse(ctx, mod, hostfuncs.NewValidationError(errMsg))
		return
	}

	requestBytes, ok := mod.Memory().Read(ptr, length)
	if !ok {
		errMsg := "failed to read request from guest memory"
		slog.ErrorContext(ctx, "host: "+errMsg, "function", name)
		stack[0] = writeErrorResponse(ctx, mod, hostfuncs.NewInternalError(errMsg))
		return
	}

	responseBytes, err := e.registry.Invoke(ctx, name, requestBytes)
	if err != nil {
		slog.ErrorContext(ctx, "host: handler invocation failed", "function", name, "error", err)
		stack[0] = writeErrorResponse(ctx, mod, hostfuncs.NewInternalError(err.Error()))
		return
	}

	stack[0] = writeResponse(ctx, mod, responseBytes)
}

// handleLogMessage decodes a guest log record and re-emits it through the
// host's slog logger.
func handleLogMessage(ctx context.Context, mod api.Module, stack []uint64) {
	ptr, length := unpackPtrLen(stack[0])
	payload, ok := mod.Memory().Read(ptr, length)
	if !ok {
		return
	}

	var msg sdklog.LogMessageWire
	if err := json.Unmarshal(payload, &msg); err != nil {
		slog.InfoContext(ctx, "plugin log (raw)", "payload", string(payload))
		return
	}

	attrs := make([]any, 0, 2*len(msg.Attrs)+2)
	attrs = append(attrs, "plugin_level", msg.Level)
	for _, a := range msg.Attrs {
		attrs = append(attrs, a.Key, a.Value)
	}
	slog.InfoContext(ctx, msg.Message, attrs...)
}

// writeResponse allocates memory in the guest and writes the response bytes.
// Returns packed ptr+len or 0 on failure.
func writeResponse(ctx context.Context, mod api.Module, data []byte) uint64 {
	allocateFn := mod.ExportedFunction("allocate")
	if allocateFn == nil {
		slog.ErrorContext(ctx, "host: guest module missing 'allocate' export")
		return 0
	}

	results, err := allocateFn.Call(ctx, uint64(len(data)))
	if err != nil {
		slog.ErrorContext(ctx, "host: failed to call guest allocate", "error", err)
		return 0
	}
	ptr := uint32(results[0]) //nolint:gosec // G115: WASM32 pointers are always 32-bit

	if !mod.Memory().Write(ptr, data) {
		slog.ErrorContext(ctx, "host: failed to write response to guest memory")
		return 0
	}

	return packPtrLen(ptr, uint32(len(data))) //nolint:gosec // G115: Data length is bounded by config
}

// writeErrorResponse writes an error response to guest memory.
func writeErrorResponse(ctx context.Context, mod api.Module, errResp hostfuncs.ErrorResponse) uint64 {
	return writeResponse(ctx, mod, errResp.ToJSON())
}

// packPtrLen packs a pointer and length into a single i64.
// Upper 32 bits: pointer, lower 32 bits: length.
func packPtrLen(ptr, length uint32) uint64 {
	return (uint64(ptr) << 32) | uint64(length)
}

// unpackPtrLen unpacks a pointer and length from a packed i64.
func unpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> 32)           //nolint:gosec // G115: Packed format stores 32-bit values
	length = uint32(packed & 0xFFFFFFFF) //nolint:gosec // G115: Packed format stores 32-bit values
	return ptr, length
}
