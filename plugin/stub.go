//go:build !wasip1

package plugin

// Register is a stub for non-WASM platforms.
func Register(d Definition) {
	// No-op on non-WASM platforms
}
