// Package allocator provides the memory strategies every owning structure in
// jsondoc is built on. A nil Allocator anywhere in the public API means the
// process-wide heap allocator.
package allocator

import "errors"

// ErrOutOfMemory is returned when an allocator cannot satisfy a request.
var ErrOutOfMemory = errors.New("allocator: out of memory")

// Allocator hands out byte blocks. A block returned by Allocate or Reallocate
// must only be passed back to the allocator that produced it, and must not be
// extended with append: its capacity may reach into memory the allocator
// still owns.
type Allocator interface {
	// Allocate returns a block of exactly size bytes.
	Allocate(size int) ([]byte, error)
	// Reallocate resizes block to size bytes, preserving the leading
	// min(len(block), size) bytes. The returned block may alias block.
	Reallocate(block []byte, size int) ([]byte, error)
	// Deallocate releases block. Strategies that free in bulk may ignore it.
	Deallocate(block []byte)
}

var defaultAllocator Allocator = Heap{}

// Default returns the process-wide heap allocator.
func Default() Allocator {
	return defaultAllocator
}

// OrDefault returns a, or Default when a is nil.
func OrDefault(a Allocator) Allocator {
	if a == nil {
		return defaultAllocator
	}
	return a
}

func checkSize(size int) {
	if size < 0 {
		panic("allocator: negative size")
	}
}
