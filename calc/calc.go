//go:build wasip1

// Package calc is the guest-side client for the host's arithmetic host
// functions. Thin plugins use it to delegate add and subtract to the
// host instead of carrying the kernels themselves.
package calc

import (
	"encoding/json"
	"fmt"

	"github.com/calcplug-dev/calcplug-sdk/hostfuncs"
	"github.com/calcplug-dev/calcplug-sdk/internal/abi"
	_ "github.com/calcplug-dev/calcplug-sdk/log" // Initialize WASM logging handler
)

// Host function imports, one per arithmetic operation. Each takes a
// packed ptr+len JSON request and returns a packed ptr+len JSON response.
//
//go:wasmimport calc_host add
//nolint:revive // intentional snake_case to match WASM import convention
func host_add(requestPacked uint64) uint64

//go:wasmimport calc_host subtract
//nolint:revive // intentional snake_case to match WASM import convention
func host_subtract(requestPacked uint64) uint64

//go:wasmimport calc_host add_u64
//nolint:revive // intentional snake_case to match WASM import convention
func host_add_u64(requestPacked uint64) uint64

//go:wasmimport calc_host subtract_u64
//nolint:revive // intentional snake_case to match WASM import convention
func host_subtract_u64(requestPacked uint64) uint64

// Add delegates float64 addition to the host's "add" host function.
func Add(left, right float64) (float64, error) {
	var resp hostfuncs.AddResponse
	err := invoke("add", func(p uint64) uint64 { return host_add(p) },
		hostfuncs.AddRequest{Left: left, Right: right}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Sum, nil
}

// Subtract delegates float64 subtraction to the host's "subtract" host
// function.
func Subtract(left, right float64) (float64, error) {
	var resp hostfuncs.SubtractResponse
	err := invoke("subtract", func(p uint64) uint64 { return host_subtract(p) },
		hostfuncs.SubtractRequest{Left: left, Right: right}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Difference, nil
}

// AddUint delegates uint64 addition to the host's "add_u64" host function.
func AddUint(left, right uint64) (uint64, error) {
	var resp hostfuncs.AddUintResponse
	err := invoke("add_u64", func(p uint64) uint64 { return host_add_u64(p) },
		hostfuncs.AddUintRequest{Left: left, Right: right}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Sum, nil
}

// SubtractUint delegates uint64 subtraction to the host's "subtract_u64"
// host function.
func SubtractUint(left, right uint64) (uint64, error) {
	var resp hostfuncs.SubtractUintResponse
	err := invoke("subtract_u64", func(p uint64) uint64 { return host_subtract_u64(p) },
		hostfuncs.SubtractUintRequest{Left: left, Right: right}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Difference, nil
}

// invoke round-trips one request through a host function: marshal the
// request, copy it into guest memory, call the import, read the packed
// response, and free both buffers.
func invoke(name string, hostFn func(uint64) uint64, req any, resp any) error {
	requestBytes, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", name, err)
	}

	requestPacked := abi.PtrFromBytes(requestBytes)
	defer abi.DeallocatePacked(requestPacked)

	responsePacked := hostFn(requestPacked)
	if responsePacked == 0 {
		return fmt.Errorf("null response from host function %q", name)
	}

	responseBytes := abi.BytesFromPtr(responsePacked)
	defer abi.DeallocatePacked(responsePacked)

	// The host returns an ErrorResponse in place of a result on failure.
	var hostErr hostfuncs.ErrorResponse
	if err := json.Unmarshal(responseBytes, &hostErr); err == nil && hostErr.Error != "" {
		return fmt.Errorf("%s: %s", hostErr.Error, hostErr.Message)
	}

	if err := json.Unmarshal(responseBytes, resp); err != nil {
		return fmt.Errorf("failed to unmarshal %s response: %w", name, err)
	}
	return nil
}
