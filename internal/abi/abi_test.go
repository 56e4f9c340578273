//go:build wasip1

package abi

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetMemoryManager clears all tracked allocations for test isolation.
func resetMemoryManager() {
	FreeAllTracked()
}

func TestAllocateDeallocate(t *testing.T) {
	resetMemoryManager()

	size := uint32(1024)
	ptr := allocate(size)
	require.NotZero(t, ptr, "allocate returned 0")

	allocCount, totalBytes := Stats()
	assert.Equal(t, 1, allocCount, "expected 1 tracked allocation")
	assert.Equal(t, int(size), totalBytes, "total bytes mismatch")

	data := []byte("left=1 right=2")
	copyToMemory(ptr, data)
	readData := readFromMemory(ptr, uint32(len(data)))
	assert.Equal(t, data, readData, "memory read mismatch")

	deallocate(ptr, size)

	allocCount, totalBytes = Stats()
	assert.Equal(t, 0, allocCount, "expected 0 tracked allocations after deallocate")
	assert.Equal(t, 0, totalBytes, "expected 0 total bytes after deallocate")
}

func TestAllocate_ZeroSize(t *testing.T) {
	ptr := allocate(0)
	assert.Zero(t, ptr, "allocate(0) should return 0")
}

func TestDeallocate_Idempotent(t *testing.T) {
	resetMemoryManager()

	ptr := allocate(100)
	deallocate(ptr, 100)
	// Second deallocate should not panic or corrupt state
	deallocate(ptr, 100)

	_, totalBytes := Stats()
	assert.GreaterOrEqual(t, totalBytes, 0, "total bytes should not be negative")
}

func TestFreeAllTracked(t *testing.T) {
	resetMemoryManager()

	allocate(100)
	allocate(200)

	allocCount, _ := Stats()
	require.Equal(t, 2, allocCount, "expected 2 tracked allocations")

	FreeAllTracked()

	allocCount, totalBytes := Stats()
	assert.Equal(t, 0, allocCount, "expected 0 allocations after FreeAllTracked")
	assert.Equal(t, 0, totalBytes, "expected 0 bytes after FreeAllTracked")
}

func TestPtrFromBytes(t *testing.T) {
	resetMemoryManager()

	data := []byte(`{"name":"adder","version":"1.0.0"}`)
	packed := PtrFromBytes(data)

	ptr, length := UnpackPtrLen(packed)
	assert.NotZero(t, ptr, "expected non-zero pointer")
	assert.Equal(t, uint32(len(data)), length, "length mismatch")

	readData := BytesFromPtr(packed)
	assert.Equal(t, data, readData, "data mismatch")

	DeallocatePacked(packed)

	allocCount, _ := Stats()
	assert.Equal(t, 0, allocCount, "expected 0 allocations after cleanup")
}

func TestPtrFromBytes_Empty(t *testing.T) {
	packed := PtrFromBytes(nil)
	assert.Zero(t, packed, "PtrFromBytes(nil) should return 0")

	packed = PtrFromBytes([]byte{})
	assert.Zero(t, packed, "PtrFromBytes([]) should return 0")
}

func TestBytesFromPtr_ZeroValues(t *testing.T) {
	data := BytesFromPtr(0)
	assert.Nil(t, data, "BytesFromPtr(0) should return nil")
}

func TestDeallocatePacked_ZeroValue(t *testing.T) {
	// Should not panic
	DeallocatePacked(0)
}

func TestConcurrency(t *testing.T) {
	resetMemoryManager()

	var wg sync.WaitGroup
	iterations := 100

	wg.Add(iterations)
	for i := 0; i < iterations; i++ {
		go func() {
			defer wg.Done()
			packed := PtrFromBytes([]byte("concurrent test data"))
			_ = BytesFromPtr(packed)
			DeallocatePacked(packed)
		}()
	}
	wg.Wait()

	allocCount, _ := Stats()
	assert.Equal(t, 0, allocCount, "expected 0 allocations after concurrent operations")
}

func TestConfigure_WithMaxTotalAllocations(t *testing.T) {
	resetMemoryManager()

	Configure(WithMaxTotalAllocations(1024))

	ptr := allocate(512)
	require.NotZero(t, ptr)
	deallocate(ptr, 512)

	assert.Panics(t, func() {
		allocate(2048)
	}, "expected panic when exceeding allocation limit")

	// Reset to default for other tests
	Configure(WithMaxTotalAllocations(DefaultMaxTotalAllocations))
	FreeAllTracked()
}

func TestConfigure_InvalidLimit(t *testing.T) {
	resetMemoryManager()

	// Zero or negative limits should be ignored
	Configure(WithMaxTotalAllocations(0))
	Configure(WithMaxTotalAllocations(-100))

	ptr := allocate(1024)
	require.NotZero(t, ptr)
	deallocate(ptr, 1024)
}
