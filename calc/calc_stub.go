//go:build !wasip1

package calc

import "errors"

// ErrNotWASM is returned on non-WASM platforms, where no host runtime
// exists to delegate to.
var ErrNotWASM = errors.New("host delegation requires a wasip1 build")

// Add is a stub for non-WASM platforms.
func Add(left, right float64) (float64, error) {
	return 0, ErrNotWASM
}

// Subtract is a stub for non-WASM platforms.
func Subtract(left, right float64) (float64, error) {
	return 0, ErrNotWASM
}

// AddUint is a stub for non-WASM platforms.
func AddUint(left, right uint64) (uint64, error) {
	return 0, ErrNotWASM
}

// SubtractUint is a stub for non-WASM platforms.
func SubtractUint(left, right uint64) (uint64, error) {
	return 0, ErrNotWASM
}
