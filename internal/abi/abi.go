//go:build wasip1

package abi

import (
	"fmt"
	"sync"
	"unsafe"
)

// DefaultMaxTotalAllocations is the default ceiling on total memory the
// SDK will allocate in WASM linear memory. Arithmetic plugins exchange
// tiny payloads; the cap exists to keep a misbehaving host from growing
// guest memory without bound.
const DefaultMaxTotalAllocations = 16 * 1024 * 1024 // 16 MB

// MemoryManager tracks all allocations made by the SDK in WASM linear memory.
// It keeps a reference to allocated slices to prevent the Go GC from collecting
// them, effectively "pinning" the memory until explicitly freed.
var memoryManager = struct {
	sync.Mutex
	ptrs           map[uint32][]byte // ptr -> slice reference
	totalAllocated int
	maxAllocations int
}{
	ptrs:           make(map[uint32][]byte),
	totalAllocated: 0,
	maxAllocations: DefaultMaxTotalAllocations,
}

// ConfigOption adjusts the memory manager configuration.
type ConfigOption func(*int)

// WithMaxTotalAllocations sets the allocation ceiling in bytes.
// Zero or negative limits are ignored.
func WithMaxTotalAllocations(limit int) ConfigOption {
	return func(max *int) {
		if limit > 0 {
			*max = limit
		}
	}
}

// Configure applies options to the memory manager.
func Configure(opts ...ConfigOption) {
	memoryManager.Lock()
	defer memoryManager.Unlock()
	for _, opt := range opts {
		opt(&memoryManager.maxAllocations)
	}
}

// Stats returns the number of tracked allocations and total bytes held.
func Stats() (allocations, totalBytes int) {
	memoryManager.Lock()
	defer memoryManager.Unlock()
	return len(memoryManager.ptrs), memoryManager.totalAllocated
}

// allocate reserves memory in the WASM linear memory and returns a pointer.
// The host writes request or response bytes through this pointer. The
// allocation is tracked to prevent GC. Panics if the allocation ceiling
// would be exceeded.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	memoryManager.Lock()
	defer memoryManager.Unlock()

	if memoryManager.totalAllocated+int(size) > memoryManager.maxAllocations {
		panic(fmt.Sprintf("abi: memory allocation limit exceeded (requested: %d bytes, current: %d bytes, limit: %d bytes)",
			size, memoryManager.totalAllocated, memoryManager.maxAllocations))
	}

	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))

	memoryManager.ptrs[ptr] = buf // pin: store the slice so the GC keeps it
	memoryManager.totalAllocated += int(size)

	return ptr
}

// deallocate frees memory by removing the reference from the memory manager,
// allowing the Go GC to collect it. Decrements totalAllocated by the actual
// stored slice length (not the passed size) to prevent counter corruption.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, size uint32) {
	memoryManager.Lock()
	defer memoryManager.Unlock()

	storedSlice, exists := memoryManager.ptrs[ptr]
	if !exists {
		return // Ignore untracked pointers (idempotent)
	}

	actualSize := len(storedSlice)
	delete(memoryManager.ptrs, ptr)
	memoryManager.totalAllocated -= actualSize

	if memoryManager.totalAllocated < 0 {
		memoryManager.totalAllocated = 0
	}
}

// FreeAllTracked frees all memory currently tracked by the SDK.
// Called during panic recovery or module shutdown to prevent leaks.
func FreeAllTracked() {
	memoryManager.Lock()
	defer memoryManager.Unlock()

	for ptr := range memoryManager.ptrs {
		delete(memoryManager.ptrs, ptr)
	}
	memoryManager.totalAllocated = 0
}

// PtrFromBytes allocates WASM memory, copies the given data into it,
// and returns the packed pointer and length. Used when the guest sends
// data (e.g. the manifest) to the host.
func PtrFromBytes(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	size := uint32(len(data))
	ptr := allocate(size)
	copyToMemory(ptr, data)
	return PackPtrLen(ptr, size)
}

// BytesFromPtr unpacks a uint64 into a pointer and length, then reads
// the corresponding data from WASM linear memory. Used when the guest
// receives data from the host.
func BytesFromPtr(packed uint64) []byte {
	ptr, length := UnpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return nil
	}
	return readFromMemory(ptr, length)
}

// DeallocatePacked unpacks a uint64 pointer/length and deallocates the
// memory. Guests call this after the host has consumed a buffer the
// guest allocated for a host function call.
func DeallocatePacked(packed uint64) {
	ptr, length := UnpackPtrLen(packed)
	if ptr != 0 && length > 0 {
		deallocate(ptr, length)
	}
}

// copyToMemory copies data to WASM linear memory at the given pointer.
func copyToMemory(ptr uint32, data []byte) {
	// WASM linear memory: uint32 offset -> pointer conversion is safe and necessary
	//nolint:gosec // G103: Valid unsafe.Pointer use for WASM linear memory access
	dest := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), len(data))
	copy(dest, data)
}

// readFromMemory reads data from WASM linear memory.
func readFromMemory(ptr uint32, length uint32) []byte {
	// WASM linear memory: uint32 offset -> pointer conversion is safe and necessary
	//nolint:gosec // G103: Valid unsafe.Pointer use for WASM linear memory access
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
	data := make([]byte, length) // return a copy, not a view
	copy(data, src)
	return data
}
