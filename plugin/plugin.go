//go:build wasip1

package plugin

import (
	"encoding/json"
	"fmt"
	"log/slog"

	sdk "github.com/calcplug-dev/calcplug-sdk"
	"github.com/calcplug-dev/calcplug-sdk/internal/abi"
	_ "github.com/calcplug-dev/calcplug-sdk/log" // Initialize WASM logging handler
)

// registered holds the plugin definition set by Register. The numeric
// exports dispatch to it; the zero value makes every call trap with a
// clear message until Register runs.
var registered Definition

// Register stores the plugin definition for the export layer.
// Call it once from an init function in the plugin's main package.
func Register(d Definition) {
	registered = d
}

// The arithmetic exports carry raw numeric values: two parameters of the
// operand kind in, one value of the same kind out. There is no error
// channel on these signatures; a call to an unprovided operation traps,
// which the host surfaces as a call error.

//go:wasmexport add
func wasmAdd(left, right float64) float64 {
	if registered.Add == nil {
		panic("plugin: operation add not provided")
	}
	return registered.Add(left, right)
}

//go:wasmexport subtract
func wasmSubtract(left, right float64) float64 {
	if registered.Subtract == nil {
		panic("plugin: operation subtract not provided")
	}
	return registered.Subtract(left, right)
}

//go:wasmexport add_u64
func wasmAddUint(left, right uint64) uint64 {
	if registered.AddUint == nil {
		panic("plugin: operation add_u64 not provided")
	}
	return registered.AddUint(left, right)
}

//go:wasmexport subtract_u64
func wasmSubtractUint(left, right uint64) uint64 {
	if registered.SubtractUint == nil {
		panic("plugin: operation subtract_u64 not provided")
	}
	return registered.SubtractUint(left, right)
}

//go:wasmexport _manifest
func wasmManifest() uint64 {
	return handleExportedCall(func() (interface{}, error) {
		manifest := registered.Manifest()
		if err := sdk.ValidateMetadata(manifest); err != nil {
			return nil, err
		}
		return manifest, nil
	})
}

// handleExportedCall is a generic wrapper for packed-JSON WASM exports.
// It provides panic recovery, error handling, and JSON serialization,
// so the host always receives parseable bytes.
func handleExportedCall(f func() (interface{}, error)) (packedResult uint64) {
	defer func() {
		if r := recover(); r != nil {
			// Free all tracked allocations on panic to prevent leaks.
			abi.FreeAllTracked()

			errDetail := &sdk.ErrorDetail{
				Message: fmt.Sprintf("plugin panic: %v", r),
				Type:    "panic",
			}
			slog.Error("sdk: plugin panic recovered", "error", errDetail.Message)
			packedResult = packErrorDetail(errDetail)
		}
	}()

	result, err := f()
	if err != nil {
		slog.Error("sdk: plugin function returned error", "error", err.Error())
		packedResult = packErrorDetail(sdk.ToErrorDetail(err))
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		slog.Error("sdk: failed to marshal result", "error", err.Error())
		packedResult = packErrorDetail(sdk.ToErrorDetail(err))
		return
	}

	packedResult = abi.PtrFromBytes(data)
	return
}

// packErrorDetail marshals an ErrorDetail to JSON and returns the packed
// pointer/length. Used for internal SDK errors and panics.
func packErrorDetail(detail *sdk.ErrorDetail) uint64 {
	data, err := json.Marshal(detail)
	if err != nil {
		// Fallback if even marshaling the error fails
		data = []byte(`{"message":"sdk: critical error during error marshalling","type":"internal"}`)
	}
	return abi.PtrFromBytes(data)
}
